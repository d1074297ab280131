package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

func (handler *Handler) GetToday(c *fiber.Ctx) error {
	prediction := handler.advisory.Prediction()
	records := handler.cycles.Records()
	status := services.BuildTodayStatus(records, prediction.Result, handler.today())

	view := todayView{
		Date:       models.FormatDay(status.Date),
		IsLogging:  status.IsLogging,
		CycleDay:   status.CycleDay,
		Phase:      status.Phase,
		PhaseLabel: handler.i18n.Translate(currentLanguage(c), "phases."+string(status.Phase)),
		Stats:      newCycleStatsView(services.BuildCycleStats(records)),
	}
	if status.CurrentCycle != nil {
		current := newCycleView(*status.CurrentCycle)
		view.CurrentCycle = &current
	}
	if status.HasPrediction {
		days := status.DaysUntilNext
		view.NextDate = models.FormatDay(status.NextDate)
		view.DaysUntilNext = &days
	}
	return c.JSON(view)
}

func (handler *Handler) GetPrediction(c *fiber.Ctx) error {
	return c.JSON(newPredictionStateView(handler.advisory.Prediction()))
}

func (handler *Handler) RefreshPrediction(c *fiber.Ctx) error {
	if err := handler.advisory.RefreshPrediction(handler.cycles.Records()); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(newPredictionStateView(handler.advisory.Prediction()))
}

func (handler *Handler) GetReport(c *fiber.Ctx) error {
	return c.JSON(newReportStateView(handler.advisory.Report()))
}

func (handler *Handler) RegenerateReport(c *fiber.Ctx) error {
	cycle, err := handler.cycles.Find(c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.advisory.RegenerateReport(cycle); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(newReportStateView(handler.advisory.Report()))
}
