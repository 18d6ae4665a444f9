package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	attendance "github.com/BruksfildServices01/daycare-manager/internal/domain/attendance"
	finance "github.com/BruksfildServices01/daycare-manager/internal/domain/finance"
	schedule "github.com/BruksfildServices01/daycare-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type ReportHandler struct {
	store store.Store
}

func NewReportHandler(s store.Store) *ReportHandler {
	return &ReportHandler{store: s}
}

// Overview summarizes finance, attendance and schedules for the period.
func (h *ReportHandler) Overview(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "startDate and endDate must be dates")
		return
	}

	ctx := c.Request.Context()

	records, err := h.store.Finance().List(ctx, store.FinanceFilter{From: from, To: to})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	visits, err := h.store.Attendance().List(ctx, store.AttendanceFilter{From: from, To: to})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	schedules, err := h.store.Schedules().List(ctx, store.ScheduleFilter{From: from, To: to})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"finance":    finance.Summarize(records),
		"attendance": attendance.Summarize(visits),
		"schedules":  schedule.CountByStatus(schedules),
	})
}
