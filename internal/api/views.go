package api

import (
	"math"
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

type symptomView struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

type cycleView struct {
	ID           string           `json:"id"`
	StartDate    string           `json:"startDate"`
	EndDate      string           `json:"endDate,omitempty"`
	Symptoms     []models.Symptom `json:"symptoms"`
	Ongoing      bool             `json:"ongoing"`
	DurationDays int              `json:"durationDays,omitempty"`
}

func newCycleView(record models.CycleRecord) cycleView {
	view := cycleView{
		ID:        record.ID,
		StartDate: models.FormatDay(record.StartDate),
		Symptoms:  record.Symptoms,
		Ongoing:   record.IsOpen(),
	}
	if view.Symptoms == nil {
		view.Symptoms = []models.Symptom{}
	}
	if record.EndDate != nil {
		view.EndDate = models.FormatDay(*record.EndDate)
		view.DurationDays = models.DaysBetween(record.StartDate, *record.EndDate) + 1
	}
	return view
}

func newCycleSummaryViews(summaries []services.CycleSummary) []cycleView {
	views := make([]cycleView, 0, len(summaries))
	for _, summary := range summaries {
		views = append(views, newCycleView(summary.Record))
	}
	return views
}

type calendarDayView struct {
	Date    string       `json:"date"`
	Day     int          `json:"day"`
	InMonth bool         `json:"inMonth"`
	IsToday bool         `json:"isToday"`
	Phase   models.Phase `json:"phase"`
}

type calendarView struct {
	Month string            `json:"month"`
	Prev  string            `json:"prev"`
	Next  string            `json:"next"`
	Days  []calendarDayView `json:"days"`
}

type phaseView struct {
	Date  string       `json:"date"`
	Phase models.Phase `json:"phase"`
	Label string       `json:"label"`
}

type todayView struct {
	Date          string         `json:"date"`
	IsLogging     bool           `json:"isLogging"`
	CurrentCycle  *cycleView     `json:"currentCycle,omitempty"`
	CycleDay      int            `json:"cycleDay,omitempty"`
	NextDate      string         `json:"nextDate,omitempty"`
	DaysUntilNext *int           `json:"daysUntilNext,omitempty"`
	Phase         models.Phase   `json:"phase"`
	PhaseLabel    string         `json:"phaseLabel"`
	Stats         cycleStatsView `json:"stats"`
}

type cycleStatsView struct {
	ObservedCycles      int     `json:"observedCycles"`
	MedianCycleLength   int     `json:"medianCycleLength,omitempty"`
	AverageCycleLength  float64 `json:"averageCycleLength,omitempty"`
	AveragePeriodLength float64 `json:"averagePeriodLength,omitempty"`
	LastPeriodStart     string  `json:"lastPeriodStart,omitempty"`
}

func newCycleStatsView(stats services.CycleStats) cycleStatsView {
	view := cycleStatsView{
		ObservedCycles:      stats.ObservedCycles,
		MedianCycleLength:   stats.MedianCycleLength,
		AverageCycleLength:  math.Round(stats.AverageCycleLength*10) / 10,
		AveragePeriodLength: math.Round(stats.AveragePeriodLength*10) / 10,
	}
	if !stats.LastPeriodStart.IsZero() {
		view.LastPeriodStart = models.FormatDay(stats.LastPeriodStart)
	}
	return view
}

type predictionStateView struct {
	Loading   bool                     `json:"loading"`
	Result    *models.PredictionResult `json:"result"`
	Error     string                   `json:"error,omitempty"`
	UpdatedAt *time.Time               `json:"updatedAt,omitempty"`
}

func newPredictionStateView(state services.PredictionState) predictionStateView {
	return predictionStateView{
		Loading:   state.Loading,
		Result:    state.Result,
		Error:     state.Error,
		UpdatedAt: optionalTime(state.UpdatedAt),
	}
}

type reportStateView struct {
	Loading   bool                 `json:"loading"`
	CycleID   string               `json:"cycleId,omitempty"`
	Result    *models.HealthReport `json:"result"`
	Error     string               `json:"error,omitempty"`
	UpdatedAt *time.Time           `json:"updatedAt,omitempty"`
}

// newReportStateView hides a report without any text.
func newReportStateView(state services.ReportState) reportStateView {
	view := reportStateView{
		Loading:   state.Loading,
		CycleID:   state.CycleID,
		Result:    state.Result,
		Error:     state.Error,
		UpdatedAt: optionalTime(state.UpdatedAt),
	}
	if view.Result != nil && view.Result.Empty() {
		view.Result = nil
	}
	return view
}

func optionalTime(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	return &value
}

type articleView struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Excerpt       string                 `json:"excerpt"`
	Content       string                 `json:"content,omitempty"`
	Category      models.ArticleCategory `json:"category"`
	CategoryLabel string                 `json:"categoryLabel"`
	Date          string                 `json:"date"`
	ImageURL      string                 `json:"imageUrl"`
}

func newArticleView(article services.LocalizedArticle, withContent bool) articleView {
	view := articleView{
		ID:            article.ID,
		Title:         article.Title,
		Excerpt:       article.Excerpt,
		Category:      article.Category,
		CategoryLabel: article.Label,
		Date:          article.Date,
		ImageURL:      article.ImageURL,
	}
	if withContent {
		view.Content = article.Content
	}
	return view
}
