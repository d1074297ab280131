package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclecare/internal/models"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) today() time.Time {
	return models.DayAtLocation(handler.now(), handler.location)
}

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	language := currentLanguage(c)
	catalog := models.SymptomCatalog()
	result := make([]symptomView, 0, len(catalog))
	for _, info := range catalog {
		result = append(result, symptomView{
			ID:    string(info.Symptom),
			Icon:  info.Icon,
			Label: handler.i18n.Translate(language, info.LabelKey),
		})
	}
	return c.JSON(result)
}
