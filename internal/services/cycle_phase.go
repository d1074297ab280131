package services

import (
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
)

// ClassifyPhase maps day onto a fixed 28-day model anchored on each record's
// start. Records are checked in iteration order and the first match wins.
func ClassifyPhase(day time.Time, history []models.CycleRecord) models.Phase {
	day = models.DayOf(day)
	for _, record := range history {
		if phase, ok := classifyAgainstRecord(day, record); ok {
			return phase
		}
	}
	return models.PhaseNone
}

func classifyAgainstRecord(day time.Time, record models.CycleRecord) (models.Phase, bool) {
	start := models.DayOf(record.StartDate)
	periodEnd := record.PeriodEnd()
	if models.BetweenInclusive(day, start, periodEnd) {
		return models.PhasePeriod, true
	}

	ovulationDay := models.AddDays(start, models.OvulationOffsetDays)
	if day.Equal(ovulationDay) {
		return models.PhaseOvulation, true
	}

	if models.BetweenInclusive(day, models.AddDays(periodEnd, 1), models.AddDays(ovulationDay, -1)) {
		return models.PhaseFollicular, true
	}

	if models.BetweenInclusive(day, models.AddDays(ovulationDay, 1), models.AddDays(start, models.CycleEndOffsetDays)) {
		return models.PhaseLuteal, true
	}

	return models.PhaseNone, false
}

type CalendarDayState struct {
	Date       time.Time
	DateString string
	Day        int
	InMonth    bool
	IsToday    bool
	Phase      models.Phase
}

// BuildCalendarMonth returns a Sunday-aligned grid of whole weeks covering
// the month that contains monthStart.
func BuildCalendarMonth(monthStart time.Time, history []models.CycleRecord, today time.Time) []CalendarDayState {
	year, month, _ := monthStart.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, 6-int(last.Weekday()))
	todayKey := models.FormatDay(today)

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(models.DayLayout)
		days = append(days, CalendarDayState{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    day.Month() == month,
			IsToday:    key == todayKey,
			Phase:      ClassifyPhase(day, history),
		})
	}
	return days
}
