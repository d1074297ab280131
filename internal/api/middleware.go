package api

import "github.com/gofiber/fiber/v2"

const (
	authCookieName     = "cyclecare_auth"
	languageCookieName = "cyclecare_lang"
	contextLanguageKey = "current_language"
)

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
