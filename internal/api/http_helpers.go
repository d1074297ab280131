package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclecare/internal/services"
)

const (
	errorCodeDuplicateStart       = "duplicate_start"
	errorCodeOpenCycleExists      = "open_cycle_exists"
	errorCodeCycleNotFound        = "cycle_not_found"
	errorCodeCycleNotCurrent      = "cycle_not_current"
	errorCodeCycleAlreadyFinished = "cycle_already_finished"
	errorCodeInvalidDateRange     = "invalid_date_range"
	errorCodeUnknownSymptom       = "unknown_symptom"
	errorCodeInvalidDate          = "invalid_date"
	errorCodeInvalidPayload       = "invalid_payload"
	errorCodePersistFailed        = "persist_failed"
	errorCodeUnauthorized         = "unauthorized"
	errorCodeInvalidPasscode      = "invalid_passcode"
	errorCodeTooManyAttempts      = "too_many_attempts"
	errorCodeNotFound             = "not_found"
	errorCodeNoCycles             = "no_cycles"
)

// apiError writes {"error": code, "message": localized notice}.
func (handler *Handler) apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": handler.i18n.Translate(currentLanguage(c), "notices."+code),
	})
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateStart):
		return handler.apiError(c, fiber.StatusConflict, errorCodeDuplicateStart)
	case errors.Is(err, services.ErrOpenCycleExists):
		return handler.apiError(c, fiber.StatusConflict, errorCodeOpenCycleExists)
	case errors.Is(err, services.ErrCycleAlreadyFinished):
		return handler.apiError(c, fiber.StatusConflict, errorCodeCycleAlreadyFinished)
	case errors.Is(err, services.ErrCycleNotCurrent):
		return handler.apiError(c, fiber.StatusConflict, errorCodeCycleNotCurrent)
	case errors.Is(err, services.ErrCycleNotFound):
		return handler.apiError(c, fiber.StatusNotFound, errorCodeCycleNotFound)
	case errors.Is(err, services.ErrArticleNotFound):
		return handler.apiError(c, fiber.StatusNotFound, errorCodeNotFound)
	case errors.Is(err, services.ErrUnknownSymptom):
		return handler.apiError(c, fiber.StatusBadRequest, errorCodeUnknownSymptom)
	case errors.Is(err, services.ErrInvalidDateRange):
		return handler.apiError(c, fiber.StatusBadRequest, errorCodeInvalidDateRange)
	case errors.Is(err, services.ErrPredictionNoCycles):
		return handler.apiError(c, fiber.StatusConflict, errorCodeNoCycles)
	case errors.Is(err, services.ErrPersistFailed):
		return handler.apiError(c, fiber.StatusInternalServerError, errorCodePersistFailed)
	default:
		handler.log.Error("unexpected handler error", "path", c.Path(), "error", err)
		return handler.apiError(c, fiber.StatusInternalServerError, errorCodePersistFailed)
	}
}
