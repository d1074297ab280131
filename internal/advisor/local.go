package advisor

import (
	"context"
	"math"
	"strings"

	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

type adviceCategory int

const (
	adviceDiet adviceCategory = iota
	adviceExercise
	adviceRest
)

var symptomAdviceCategory = map[models.Symptom]adviceCategory{
	models.SymptomDizziness:        adviceDiet,
	models.SymptomCramps:           adviceExercise,
	models.SymptomFatigue:          adviceRest,
	models.SymptomBackPain:         adviceExercise,
	models.SymptomMoodSwings:       adviceRest,
	models.SymptomBreastTenderness: adviceDiet,
	models.SymptomBloating:         adviceDiet,
	models.SymptomAcne:             adviceDiet,
}

// LocalGateway answers advisory requests without a network call. It is used
// when no Gemini API key is configured.
type LocalGateway struct {
	translator Translator
	language   string
}

func NewLocalGateway(translator Translator, language string) *LocalGateway {
	return &LocalGateway{translator: translator, language: language}
}

func (gateway *LocalGateway) PredictNext(ctx context.Context, history []models.CycleRecord) (models.PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return models.PredictionResult{}, wrapGatewayError(OpPredictNext, err)
	}
	if len(history) == 0 {
		return models.PredictionResult{
			Message: gateway.translator.Translate(gateway.language, "advice.prediction.no_data"),
		}, nil
	}

	stats := services.BuildCycleStats(history)
	cycleLength := stats.PredictionCycleLength()
	next := models.FormatDay(models.AddDays(stats.LastPeriodStart, cycleLength))

	messageKey := "advice.prediction.default"
	if stats.ObservedCycles > 0 {
		messageKey = "advice.prediction.observed"
	}
	return models.PredictionResult{
		NextDate:   next,
		Confidence: localConfidence(stats.ObservedCycles),
		Message:    gateway.translator.Translatef(gateway.language, messageKey, cycleLength, next),
	}, nil
}

func localConfidence(observedCycles int) float64 {
	confidence := 0.3 + 0.1*float64(observedCycles)
	return math.Round(math.Min(confidence, 0.8)*100) / 100
}

func (gateway *LocalGateway) GenerateReport(ctx context.Context, cycle models.CycleRecord) (models.HealthReport, error) {
	if err := ctx.Err(); err != nil {
		return models.HealthReport{}, wrapGatewayError(OpGenerateReport, err)
	}

	lang := gateway.language
	tips := map[adviceCategory][]string{
		adviceDiet:     {gateway.translator.Translate(lang, "advice.diet.base")},
		adviceExercise: {gateway.translator.Translate(lang, "advice.exercise.base")},
		adviceRest:     {gateway.translator.Translate(lang, "advice.rest.base")},
	}
	labels := make([]string, 0, len(cycle.Symptoms))
	for _, symptom := range cycle.Symptoms {
		category, ok := symptomAdviceCategory[symptom]
		if !ok {
			continue
		}
		tips[category] = append(tips[category], gateway.translator.Translate(lang, "advice.tip."+string(symptom)))
		labels = append(labels, gateway.translator.Translate(lang, "symptoms."+string(symptom)))
	}

	summary := gateway.translator.Translate(lang, "advice.report.summary_none")
	if len(labels) > 0 {
		summary = gateway.translator.Translatef(lang, "advice.report.summary", periodLength(cycle), strings.Join(labels, ", "))
	}

	return models.HealthReport{
		Summary: summary,
		Advice: models.HealthAdvice{
			Diet:     strings.Join(tips[adviceDiet], " "),
			Exercise: strings.Join(tips[adviceExercise], " "),
			Rest:     strings.Join(tips[adviceRest], " "),
		},
	}, nil
}

func periodLength(cycle models.CycleRecord) int {
	return models.DaysBetween(cycle.StartDate, cycle.PeriodEnd()) + 1
}
