package services

import (
	"testing"

	"github.com/terraincognita07/cyclecare/internal/models"
)

func TestObservedCycleLengthsUsesStartOrder(t *testing.T) {
	history := []models.CycleRecord{
		closedRecord(t, "c", "2024-03-01", "2024-03-05"),
		closedRecord(t, "a", "2024-01-01", "2024-01-05"),
		openRecord(t, "d", "2024-03-31"),
		closedRecord(t, "b", "2024-01-31", "2024-02-04"),
	}

	lengths := ObservedCycleLengths(history)
	if len(lengths) != 3 || lengths[0] != 30 || lengths[1] != 30 || lengths[2] != 30 {
		t.Fatalf("expected [30 30 30], got %#v", lengths)
	}
}

func TestBuildCycleStats(t *testing.T) {
	history := []models.CycleRecord{
		closedRecord(t, "a", "2024-01-01", "2024-01-05"),
		closedRecord(t, "b", "2024-01-27", "2024-01-30"),
		closedRecord(t, "c", "2024-02-26", "2024-03-01"),
		openRecord(t, "d", "2024-03-27"),
	}

	stats := BuildCycleStats(history)
	if stats.ObservedCycles != 3 {
		t.Fatalf("expected 3 observed cycles, got %d", stats.ObservedCycles)
	}
	if stats.MedianCycleLength != 30 {
		t.Fatalf("expected median 30, got %d", stats.MedianCycleLength)
	}
	if stats.AverageCycleLength < 28.66 || stats.AverageCycleLength > 28.67 {
		t.Fatalf("expected average cycle length ~28.67, got %f", stats.AverageCycleLength)
	}
	if models.FormatDay(stats.LastPeriodStart) != "2024-03-27" {
		t.Fatalf("expected last start 2024-03-27, got %s", models.FormatDay(stats.LastPeriodStart))
	}
	if stats.AveragePeriodLength < 4.66 || stats.AveragePeriodLength > 4.67 {
		t.Fatalf("expected average period length ~4.67, got %f", stats.AveragePeriodLength)
	}
}

func TestPredictionCycleLengthFallsBackToDefault(t *testing.T) {
	stats := BuildCycleStats([]models.CycleRecord{openRecord(t, "a", "2024-01-01")})
	if stats.PredictionCycleLength() != models.DefaultCycleLength {
		t.Fatalf("expected default cycle length, got %d", stats.PredictionCycleLength())
	}
}

func TestMedianIntEvenCountRoundsHalfUp(t *testing.T) {
	if got := medianInt([]int{27, 30, 28, 29}); got != 29 {
		t.Fatalf("expected 29, got %d", got)
	}
	if got := medianInt(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got)
	}
}

func TestSortByStartDescendingDoesNotMutateInput(t *testing.T) {
	history := []models.CycleRecord{
		openRecord(t, "a", "2024-01-01"),
		openRecord(t, "b", "2024-02-01"),
	}
	sorted := SortByStartDescending(history)
	if sorted[0].ID != "b" || history[0].ID != "a" {
		t.Fatalf("expected sorted copy, got sorted=%s original=%s", sorted[0].ID, history[0].ID)
	}
}
