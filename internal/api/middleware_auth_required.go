package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AccessRequired(c *fiber.Ctx) error {
	if !handler.accessLockEnabled() {
		return c.Next()
	}
	if err := handler.authenticateRequest(c); err != nil {
		return handler.apiError(c, fiber.StatusUnauthorized, errorCodeUnauthorized)
	}
	return c.Next()
}
