package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/attendance"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *attendance.Service,
	validate *validator.Validate,
) {
	api := attendanceApi{
		svc:      svc,
		validate: validate,
	}

	ag := g.Group("/attendance", jwt)
	ag.PUT("/:date/classes/:classId/students/:studentId", api.mark, staffMiddleware())
	ag.GET("/:date/classes/:classId", api.daySheet)
	ag.GET("/history", api.history)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	date, err := core.ParseDate(ctx.Param("date"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date, expected YYYY-MM-DD"})
	}

	var data attendance.Mark
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Mark")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Mark(date, ctx.Param("classId"), ctx.Param("studentId"), data)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusOK, attendance.DatedRecord{Date: date, Record: rec})
}

func (api *attendanceApi) daySheet(ctx echo.Context) error {
	date, err := core.ParseDate(ctx.Param("date"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date, expected YYYY-MM-DD"})
	}

	records, err := api.svc.Day(date, ctx.Param("classId"))
	if err != nil {
		return errors.Wrap(err, "querying day records")
	}

	sheet := DaySheetResponse{
		Date:    date,
		Records: records,
		Counts:  make(map[string]int, len(attendance.Statuses)),
	}
	for _, rec := range records {
		sheet.Counts[rec.Status]++
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *attendanceApi) history(ctx echo.Context) error {
	studentID := ctx.QueryParam("student_id")
	classID := ctx.QueryParam("class_id")
	if studentID == "" || classID == "" {
		return core.NewValidationError(nil,
			core.FieldError{Field: "student_id", Error: "student_id and class_id are required"})
	}

	hist, err := api.svc.HistoryFor(studentID, classID)
	if err != nil {
		return errors.Wrap(err, "querying attendance history")
	}
	if hist.Entries == nil {
		hist.Entries = []attendance.DatedRecord{}
	}
	return ctx.JSON(http.StatusOK, hist)
}

type DaySheetResponse struct {
	Date    core.Date                    `json:"date"`
	Records map[string]attendance.Record `json:"records"`
	Counts  map[string]int               `json:"counts"`
}
