package models

import (
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// DayOf truncates value to its calendar day, keeping the wall-clock date
// of value's own location and re-anchoring it at UTC midnight.
func DayOf(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DayAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return DayOf(value.In(location))
}

func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func FormatDay(value time.Time) string {
	return DayOf(value).Format(DayLayout)
}

func AddDays(value time.Time, days int) time.Time {
	return DayOf(value).AddDate(0, 0, days)
}

func DaysBetween(from time.Time, to time.Time) int {
	return int(DayOf(to).Sub(DayOf(from)).Hours() / 24)
}

func SameDay(a time.Time, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

func BetweenInclusive(day time.Time, start time.Time, end time.Time) bool {
	day = DayOf(day)
	return !day.Before(DayOf(start)) && !day.After(DayOf(end))
}
