package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

const monthLayout = "2006-01"

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	today := handler.today()
	month, err := parseMonthQuery(c.Query("month"), today)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errorCodeInvalidDate)
	}

	days := services.BuildCalendarMonth(month, handler.cycles.Records(), today)
	view := calendarView{
		Month: month.Format(monthLayout),
		Prev:  month.AddDate(0, -1, 0).Format(monthLayout),
		Next:  month.AddDate(0, 1, 0).Format(monthLayout),
		Days:  make([]calendarDayView, 0, len(days)),
	}
	for _, day := range days {
		view.Days = append(view.Days, calendarDayView{
			Date:    day.DateString,
			Day:     day.Day,
			InMonth: day.InMonth,
			IsToday: day.IsToday,
			Phase:   day.Phase,
		})
	}
	return c.JSON(view)
}

func parseMonthQuery(raw string, today time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.ParseInLocation(monthLayout, trimmed, time.UTC)
}

func (handler *Handler) GetPhase(c *fiber.Ctx) error {
	day, err := models.ParseDay(c.Params("date"))
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errorCodeInvalidDate)
	}
	phase := services.ClassifyPhase(day, handler.cycles.Records())
	return c.JSON(phaseView{
		Date:  models.FormatDay(day),
		Phase: phase,
		Label: handler.i18n.Translate(currentLanguage(c), "phases."+string(phase)),
	})
}
