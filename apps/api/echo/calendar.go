package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/calendar"
	"github.com/shulehub/shule/core/school"
)

type calendarApi struct {
	svc *school.Service
}

func registerCalendarAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := calendarApi{svc: svc}
	g.GET("/calendar/:year/:month", api.monthGrid, jwt)
}

func (api *calendarApi) monthGrid(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "year", Error: "invalid year"})
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return core.NewValidationError(err, core.FieldError{Field: "month", Error: "month must be 1 - 12"})
	}

	events, err := api.svc.QueryEvents()
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	calEvents := make([]calendar.Event, 0, len(events))
	for _, ev := range events {
		calEvents = append(calEvents, calendar.Event{
			ID:    ev.ID,
			Title: ev.Title,
			Date:  ev.Date,
			Time:  ev.Time,
			Type:  ev.Type,
		})
	}

	grid := calendar.BuildGrid(year, time.Month(month), calEvents, time.Now())
	return ctx.JSON(http.StatusOK, MonthGridResponse{
		Year:  year,
		Month: month,
		Cells: grid,
	})
}

type MonthGridResponse struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Cells []calendar.DayCell `json:"cells"`
}
