package services

import (
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
)

type TodayStatus struct {
	Date          time.Time
	IsLogging     bool
	CurrentCycle  *models.CycleRecord
	CycleDay      int
	HasPrediction bool
	NextDate      time.Time
	DaysUntilNext int
	Phase         models.Phase
}

// BuildTodayStatus derives the home view. history is taken in stored order so
// the phase matches the calendar.
func BuildTodayStatus(history []models.CycleRecord, prediction *models.PredictionResult, today time.Time) TodayStatus {
	today = models.DayOf(today)
	status := TodayStatus{
		Date:  today,
		Phase: ClassifyPhase(today, history),
	}

	if current, ok := CurrentCycleOf(history); ok {
		status.IsLogging = true
		status.CurrentCycle = &current
		status.CycleDay = models.DaysBetween(current.StartDate, today) + 1
	}

	if prediction != nil && prediction.Available() {
		next, _ := models.ParseDay(prediction.NextDate)
		status.HasPrediction = true
		status.NextDate = next
		status.DaysUntilNext = max(0, models.DaysBetween(today, next))
	}
	return status
}

type CycleSummary struct {
	Record       models.CycleRecord
	Ongoing      bool
	DurationDays int
}

// BuildCycleSummaries lists records most recent first with their length.
func BuildCycleSummaries(history []models.CycleRecord) []CycleSummary {
	sorted := SortByStartDescending(history)
	summaries := make([]CycleSummary, 0, len(sorted))
	for _, record := range sorted {
		summary := CycleSummary{Record: record, Ongoing: record.IsOpen()}
		if record.EndDate != nil {
			summary.DurationDays = models.DaysBetween(record.StartDate, *record.EndDate) + 1
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
