package advisor

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

const DefaultAdviceLanguage = "English"

func buildPredictionPrompt(history []models.CycleRecord, language string) string {
	var builder strings.Builder
	builder.WriteString("You are a menstrual health assistant. Based on the following period history, ")
	builder.WriteString("predict the start date of the next period.\n")
	builder.WriteString("History (oldest first):\n")
	for _, record := range services.SortByStartAscending(history) {
		end := "Ongoing"
		if record.EndDate != nil {
			end = models.FormatDay(*record.EndDate)
		}
		fmt.Fprintf(&builder, "Start: %s, End: %s\n", models.FormatDay(record.StartDate), end)
	}
	builder.WriteString("Return nextDate as YYYY-MM-DD, confidence between 0 and 1, ")
	builder.WriteString("and a short friendly message. ")
	fmt.Fprintf(&builder, "Write the message in %s.", language)
	return builder.String()
}

func buildReportPrompt(cycle models.CycleRecord, language string) string {
	symptoms := "none"
	if len(cycle.Symptoms) > 0 {
		names := make([]string, 0, len(cycle.Symptoms))
		for _, symptom := range cycle.Symptoms {
			names = append(names, strings.ReplaceAll(string(symptom), "_", " "))
		}
		symptoms = strings.Join(names, ", ")
	}

	duration := "ongoing"
	if cycle.EndDate != nil {
		duration = fmt.Sprintf("%d days", models.DaysBetween(cycle.StartDate, *cycle.EndDate)+1)
	}

	var builder strings.Builder
	builder.WriteString("You are a menstrual health assistant. The user just finished a period.\n")
	fmt.Fprintf(&builder, "Period: %s (%s)\n", models.FormatDay(cycle.StartDate), duration)
	fmt.Fprintf(&builder, "Symptoms: %s\n", symptoms)
	builder.WriteString("Write a short summary of this period and practical advice on diet, exercise and rest. ")
	builder.WriteString("This is general wellness guidance, not a diagnosis. ")
	fmt.Fprintf(&builder, "Write in %s.", language)
	return builder.String()
}

func predictionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"nextDate":   {Type: genai.TypeString, Description: "Predicted start date, YYYY-MM-DD"},
			"confidence": {Type: genai.TypeNumber, Description: "Confidence between 0 and 1"},
			"message":    {Type: genai.TypeString},
		},
		Required: []string{"nextDate", "confidence", "message"},
	}
}

func reportSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {Type: genai.TypeString},
			"advice": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"diet":     {Type: genai.TypeString},
					"exercise": {Type: genai.TypeString},
					"rest":     {Type: genai.TypeString},
				},
				Required: []string{"diet", "exercise", "rest"},
			},
		},
		Required: []string{"summary", "advice"},
	}
}
