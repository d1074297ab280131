package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	summaries := services.BuildCycleSummaries(handler.cycles.Records())
	return c.JSON(newCycleSummaryViews(summaries))
}

func (handler *Handler) GetCurrentCycle(c *fiber.Ctx) error {
	current, ok := handler.cycles.CurrentCycle()
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, errorCodeCycleNotFound)
	}
	return c.JSON(newCycleView(current))
}

func (handler *Handler) StartPeriod(c *fiber.Ctx) error {
	created, err := handler.cycles.StartPeriod(c.UserContext(), handler.today())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCycleView(created))
}

func (handler *Handler) ToggleSymptom(c *fiber.Ctx) error {
	updated, err := handler.cycles.ToggleSymptom(c.UserContext(), c.Params("id"), c.Params("symptom"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newCycleView(updated))
}

func (handler *Handler) FinishPeriod(c *fiber.Ctx) error {
	finished, err := handler.cycles.FinishPeriod(c.UserContext(), c.Params("id"), handler.today())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newCycleView(finished))
}

func (handler *Handler) EditCycle(c *fiber.Ctx) error {
	input := editCycleInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errorCodeInvalidPayload)
	}

	record, code := parseEditCycleInput(c.Params("id"), input)
	if code != "" {
		return handler.apiError(c, fiber.StatusBadRequest, code)
	}

	saved, err := handler.cycles.EditDates(c.UserContext(), record)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newCycleView(saved))
}

func parseEditCycleInput(id string, input editCycleInput) (models.CycleRecord, string) {
	start, err := models.ParseDay(input.StartDate)
	if err != nil {
		return models.CycleRecord{}, errorCodeInvalidDate
	}

	record := models.CycleRecord{
		ID:        id,
		StartDate: start,
		Symptoms:  make([]models.Symptom, 0, len(input.Symptoms)),
	}
	if input.EndDate != nil && *input.EndDate != "" {
		end, err := models.ParseDay(*input.EndDate)
		if err != nil {
			return models.CycleRecord{}, errorCodeInvalidDate
		}
		record.EndDate = &end
	}
	for _, raw := range input.Symptoms {
		record.Symptoms = append(record.Symptoms, models.Symptom(raw))
	}
	return record, ""
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	if err := handler.cycles.DeleteCycle(c.UserContext(), c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
