package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclecare/internal/security"
)

// Unlock exchanges the passcode for a session cookie. Without a configured
// passcode the app is always unlocked.
func (handler *Handler) Unlock(c *fiber.Ctx) error {
	if !handler.accessLockEnabled() {
		return c.JSON(fiber.Map{"ok": true, "locked": false})
	}

	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.unlockLimiter.blocked(limiterKey, now) {
		return handler.apiError(c, fiber.StatusTooManyRequests, errorCodeTooManyAttempts)
	}

	input := unlockInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errorCodeInvalidPayload)
	}
	if !security.VerifyPasscode(handler.passcodeHash, input.Passcode) {
		handler.unlockLimiter.recordFailure(limiterKey, now)
		handler.log.Warn("unlock rejected", "ip", limiterKey)
		return handler.apiError(c, fiber.StatusUnauthorized, errorCodeInvalidPasscode)
	}

	handler.unlockLimiter.reset(limiterKey)
	if err := handler.setAuthCookie(c); err != nil {
		handler.log.Error("create session failed", "error", err)
		return handler.apiError(c, fiber.StatusInternalServerError, errorCodePersistFailed)
	}
	return c.JSON(fiber.Map{"ok": true, "locked": false})
}

func (handler *Handler) Lock(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true, "locked": handler.accessLockEnabled()})
}
