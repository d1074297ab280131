package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
)

const recentCycleWindow = 6

type CycleStats struct {
	ObservedCycles      int
	MedianCycleLength   int
	AverageCycleLength  float64
	AveragePeriodLength float64
	LastPeriodStart     time.Time
}

// BuildCycleStats summarises the recorded history using the last few
// observed cycles only.
func BuildCycleStats(history []models.CycleRecord) CycleStats {
	stats := CycleStats{}
	if len(history) == 0 {
		return stats
	}

	sorted := SortByStartAscending(history)
	stats.LastPeriodStart = models.DayOf(sorted[len(sorted)-1].StartDate)

	lengths := tailInts(ObservedCycleLengths(sorted), recentCycleWindow)
	stats.ObservedCycles = len(lengths)
	if len(lengths) > 0 {
		stats.MedianCycleLength = medianInt(lengths)
		stats.AverageCycleLength = averageInts(lengths)
	}

	periodLengths := make([]int, 0, len(sorted))
	for _, record := range sorted {
		if record.EndDate == nil {
			continue
		}
		periodLengths = append(periodLengths, models.DaysBetween(record.StartDate, *record.EndDate)+1)
	}
	periodLengths = tailInts(periodLengths, recentCycleWindow)
	if len(periodLengths) > 0 {
		stats.AveragePeriodLength = averageInts(periodLengths)
	}

	return stats
}

// PredictionCycleLength falls back to the canonical cycle length when no
// full cycle has been observed yet.
func (stats CycleStats) PredictionCycleLength() int {
	if stats.MedianCycleLength > 0 {
		return stats.MedianCycleLength
	}
	return models.DefaultCycleLength
}

// ObservedCycleLengths returns the day gaps between consecutive starts.
func ObservedCycleLengths(history []models.CycleRecord) []int {
	sorted := SortByStartAscending(history)
	if len(sorted) < 2 {
		return nil
	}

	lengths := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gap := models.DaysBetween(sorted[i-1].StartDate, sorted[i].StartDate)
		if gap > 0 {
			lengths = append(lengths, gap)
		}
	}
	return lengths
}

func SortByStartAscending(history []models.CycleRecord) []models.CycleRecord {
	sorted := cloneRecords(history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}

func SortByStartDescending(history []models.CycleRecord) []models.CycleRecord {
	sorted := cloneRecords(history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	return sorted
}

func tailInts(values []int, n int) []int {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func medianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, 0, len(values))
	sorted = append(sorted, values...)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return int(float64(sorted[mid-1]+sorted[mid])/2 + 0.5)
}
