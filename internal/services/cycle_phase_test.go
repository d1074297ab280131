package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
)

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := models.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}

func closedRecord(t *testing.T, id string, start string, end string) models.CycleRecord {
	t.Helper()
	endDay := mustDay(t, end)
	return models.CycleRecord{ID: id, StartDate: mustDay(t, start), EndDate: &endDay, Symptoms: []models.Symptom{}}
}

func openRecord(t *testing.T, id string, start string) models.CycleRecord {
	t.Helper()
	return models.CycleRecord{ID: id, StartDate: mustDay(t, start), Symptoms: []models.Symptom{}}
}

func TestClassifyPhaseClosedRecord(t *testing.T) {
	history := []models.CycleRecord{closedRecord(t, "a", "2024-01-01", "2024-01-05")}

	tests := []struct {
		day  string
		want models.Phase
	}{
		{day: "2023-12-31", want: models.PhaseNone},
		{day: "2024-01-01", want: models.PhasePeriod},
		{day: "2024-01-03", want: models.PhasePeriod},
		{day: "2024-01-05", want: models.PhasePeriod},
		{day: "2024-01-06", want: models.PhaseFollicular},
		{day: "2024-01-10", want: models.PhaseFollicular},
		{day: "2024-01-13", want: models.PhaseFollicular},
		{day: "2024-01-14", want: models.PhaseOvulation},
		{day: "2024-01-15", want: models.PhaseLuteal},
		{day: "2024-01-20", want: models.PhaseLuteal},
		{day: "2024-01-28", want: models.PhaseLuteal},
		{day: "2024-01-29", want: models.PhaseNone},
	}

	for _, tt := range tests {
		got := ClassifyPhase(mustDay(t, tt.day), history)
		if got != tt.want {
			t.Fatalf("expected %s for %s, got %s", tt.want, tt.day, got)
		}
	}
}

func TestClassifyPhaseOpenRecordUsesDefaultPeriodSpan(t *testing.T) {
	history := []models.CycleRecord{openRecord(t, "a", "2024-03-01")}

	if got := ClassifyPhase(mustDay(t, "2024-03-06"), history); got != models.PhasePeriod {
		t.Fatalf("expected period on start+5, got %s", got)
	}
	if got := ClassifyPhase(mustDay(t, "2024-03-07"), history); got != models.PhaseFollicular {
		t.Fatalf("expected follicular on start+6, got %s", got)
	}
}

func TestClassifyPhaseLongPeriodOverridesOvulation(t *testing.T) {
	history := []models.CycleRecord{closedRecord(t, "a", "2024-01-01", "2024-01-16")}

	if got := ClassifyPhase(mustDay(t, "2024-01-14"), history); got != models.PhasePeriod {
		t.Fatalf("expected period to win over ovulation, got %s", got)
	}
	if got := ClassifyPhase(mustDay(t, "2024-01-17"), history); got != models.PhaseLuteal {
		t.Fatalf("expected luteal after long period, got %s", got)
	}
}

func TestClassifyPhaseFirstRecordWinsOnOverlap(t *testing.T) {
	first := closedRecord(t, "first", "2024-01-01", "2024-01-05")
	second := closedRecord(t, "second", "2024-01-20", "2024-01-24")

	day := mustDay(t, "2024-01-21")
	if got := ClassifyPhase(day, []models.CycleRecord{first, second}); got != models.PhaseLuteal {
		t.Fatalf("expected luteal from the first record, got %s", got)
	}
	if got := ClassifyPhase(day, []models.CycleRecord{second, first}); got != models.PhasePeriod {
		t.Fatalf("expected period from the first record, got %s", got)
	}
}

func TestClassifyPhaseIgnoresTimeOfDay(t *testing.T) {
	history := []models.CycleRecord{closedRecord(t, "a", "2024-01-01", "2024-01-05")}
	day := time.Date(2024, time.January, 14, 23, 59, 0, 0, time.UTC)
	if got := ClassifyPhase(day, history); got != models.PhaseOvulation {
		t.Fatalf("expected ovulation, got %s", got)
	}
}

func TestClassifyPhaseEmptyHistory(t *testing.T) {
	if got := ClassifyPhase(mustDay(t, "2024-01-01"), nil); got != models.PhaseNone {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestBuildCalendarMonthGrid(t *testing.T) {
	history := []models.CycleRecord{closedRecord(t, "a", "2024-02-01", "2024-02-05")}
	today := mustDay(t, "2024-02-14")

	days := BuildCalendarMonth(mustDay(t, "2024-02-10"), history, today)
	if len(days)%7 != 0 {
		t.Fatalf("expected whole weeks, got %d cells", len(days))
	}
	if days[0].Date.Weekday() != time.Sunday {
		t.Fatalf("expected grid to start on sunday, got %s", days[0].Date.Weekday())
	}
	if days[0].DateString != "2024-01-28" || days[0].InMonth {
		t.Fatalf("expected leading day 2024-01-28 outside month, got %#v", days[0])
	}
	last := days[len(days)-1]
	if last.DateString != "2024-03-02" || last.Date.Weekday() != time.Saturday {
		t.Fatalf("expected trailing day 2024-03-02, got %#v", last)
	}

	byDate := make(map[string]CalendarDayState, len(days))
	for _, day := range days {
		byDate[day.DateString] = day
	}
	if !byDate["2024-02-14"].IsToday || byDate["2024-02-14"].Phase != models.PhaseOvulation {
		t.Fatalf("expected today ovulation cell, got %#v", byDate["2024-02-14"])
	}
	if byDate["2024-02-03"].Phase != models.PhasePeriod || byDate["2024-02-03"].Day != 3 {
		t.Fatalf("expected period on 2024-02-03, got %#v", byDate["2024-02-03"])
	}
	if byDate["2024-01-31"].Phase != models.PhaseNone {
		t.Fatalf("expected no phase before first record, got %#v", byDate["2024-01-31"])
	}
}
