package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api", handler.LanguageMiddleware)

	session := api.Group("/session")
	session.Post("", handler.Unlock)
	session.Delete("", handler.Lock)

	api.Get("/symptoms", handler.AccessRequired, handler.GetSymptoms)

	cycles := api.Group("/cycles", handler.AccessRequired)
	cycles.Get("", handler.ListCycles)
	cycles.Get("/current", handler.GetCurrentCycle)
	cycles.Post("/start", handler.StartPeriod)
	cycles.Post("/:id/symptoms/:symptom", handler.ToggleSymptom)
	cycles.Post("/:id/finish", handler.FinishPeriod)
	cycles.Post("/:id/report", handler.RegenerateReport)
	cycles.Put("/:id", handler.EditCycle)
	cycles.Delete("/:id", handler.DeleteCycle)

	api.Get("/calendar", handler.AccessRequired, handler.GetCalendar)
	api.Get("/phase/:date", handler.AccessRequired, handler.GetPhase)
	api.Get("/today", handler.AccessRequired, handler.GetToday)

	prediction := api.Group("/prediction", handler.AccessRequired)
	prediction.Get("", handler.GetPrediction)
	prediction.Post("/refresh", handler.RefreshPrediction)

	api.Get("/report", handler.AccessRequired, handler.GetReport)

	articles := api.Group("/articles", handler.AccessRequired)
	articles.Get("", handler.ListArticles)
	articles.Get("/:id", handler.GetArticle)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
