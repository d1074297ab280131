package models

import "strings"

type PredictionResult struct {
	NextDate   string  `json:"nextDate"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// Available reports whether the prediction carries a usable next date.
func (result PredictionResult) Available() bool {
	_, err := ParseDay(result.NextDate)
	return err == nil
}

type HealthAdvice struct {
	Diet     string `json:"diet"`
	Exercise string `json:"exercise"`
	Rest     string `json:"rest"`
}

type HealthReport struct {
	Summary string       `json:"summary"`
	Advice  HealthAdvice `json:"advice"`
}

func (report HealthReport) Empty() bool {
	return strings.TrimSpace(report.Summary) == "" &&
		strings.TrimSpace(report.Advice.Diet) == "" &&
		strings.TrimSpace(report.Advice.Exercise) == "" &&
		strings.TrimSpace(report.Advice.Rest) == ""
}
