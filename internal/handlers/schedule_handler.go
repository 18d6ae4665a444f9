package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/schedule"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/httpresp"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/patch"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
	scheduleuc "github.com/BruksfildServices01/daycare-manager/internal/usecase/schedule"
)

type ScheduleHandler struct {
	store        store.Store
	audit        *audit.Dispatcher
	create       *scheduleuc.CreateSchedule
	changeStatus *scheduleuc.ChangeStatus
}

func NewScheduleHandler(
	s store.Store,
	audit *audit.Dispatcher,
	create *scheduleuc.CreateSchedule,
	changeStatus *scheduleuc.ChangeStatus,
) *ScheduleHandler {
	return &ScheduleHandler{
		store:        s,
		audit:        audit,
		create:       create,
		changeStatus: changeStatus,
	}
}

// CreateScheduleRequest books a single child (childId) or several at once
// (childIds); one schedule is created per child.
type CreateScheduleRequest struct {
	ChildID      *uuid.UUID  `json:"childId"`
	ChildIDs     []uuid.UUID `json:"childIds"`
	BabysitterID *uuid.UUID  `json:"babysitterId"`
	ParentID     *uuid.UUID  `json:"parentId"`

	StartDate models.Date         `json:"startDate"`
	EndDate   models.Date         `json:"endDate"`
	Recurring models.Recurrence   `json:"recurring"`
	TimeSlots []models.TimeWindow `json:"timeSlots" binding:"omitempty,dive"`

	Location            string               `json:"location" binding:"required"`
	Notes               string               `json:"notes"`
	SpecialInstructions string               `json:"specialInstructions"`
	Rate                float64              `json:"rate" binding:"required,gt=0"`
	PaymentStatus       models.PaymentStatus `json:"paymentStatus" binding:"omitempty,payment_status"`
}

type UpdateScheduleRequest struct {
	StartDate           *models.Date           `json:"startDate"`
	EndDate             *models.Date           `json:"endDate"`
	Recurring           *models.Recurrence     `json:"recurring"`
	TimeSlots           *[]models.TimeWindow   `json:"timeSlots" binding:"omitempty,dive"`
	Location            *string                `json:"location"`
	Status              *models.ScheduleStatus `json:"status" binding:"omitempty,schedule_status"`
	Notes               *string                `json:"notes"`
	SpecialInstructions *string                `json:"specialInstructions"`
	Rate                *float64               `json:"rate" binding:"omitempty,min=0"`
	PaymentStatus       *models.PaymentStatus  `json:"paymentStatus" binding:"omitempty,payment_status"`
}

type ScheduleStatusRequest struct {
	Status models.ScheduleStatus `json:"status" binding:"required,schedule_status"`
}

const (
	scheduleNotFoundCode = "schedule_not_found"
	scheduleNotFoundMsg  = "Schedule not found"
)

// loadOwned loads :id for admins and both parties of the booking.
func (h *ScheduleHandler) loadOwned(c *gin.Context, denied string) (*models.Schedule, bool) {
	id, ok := pathID(c, scheduleNotFoundCode, scheduleNotFoundMsg)
	if !ok {
		return nil, false
	}
	s, err := h.store.Schedules().Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, scheduleNotFoundCode, scheduleNotFoundMsg))
		return nil, false
	}
	if !middleware.CurrentPrincipal(c).Owns(s.ParentID, s.BabysitterID) {
		httperr.Forbidden(c, denied)
		return nil, false
	}
	return s, true
}

// ======================================================
// CRUD
// ======================================================

func (h *ScheduleHandler) List(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)
	f := me.ScheduleScope()

	if s := models.ScheduleStatus(c.Query("status")); s != "" {
		if !domain.ValidStatus(s) {
			httperr.BadRequest(c, "invalid_status", "Unknown schedule status "+string(s))
			return
		}
		f.Status = s
	}
	childID, ok := uuidQuery(c, "child")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "child must be a valid id")
		return
	}
	f.ChildID = childID

	list, err := h.store.Schedules().List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	in := scheduleuc.CreateScheduleInput{
		Actor:               middleware.CurrentPrincipal(c),
		ChildIDs:            req.ChildIDs,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		Recurring:           req.Recurring,
		TimeSlots:           req.TimeSlots,
		Location:            req.Location,
		Notes:               req.Notes,
		SpecialInstructions: req.SpecialInstructions,
		Rate:                req.Rate,
		PaymentStatus:       req.PaymentStatus,
	}
	single := len(req.ChildIDs) == 0
	if single && req.ChildID != nil {
		in.ChildIDs = []uuid.UUID{*req.ChildID}
	}
	if req.ParentID != nil {
		in.ParentID = *req.ParentID
	}
	if req.BabysitterID != nil {
		in.BabysitterID = *req.BabysitterID
	}

	created, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if single {
		c.JSON(http.StatusCreated, created[0])
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	s, ok := h.loadOwned(c, "Not authorized to view this schedule")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	s, ok := h.loadOwned(c, "Not authorized to update this schedule")
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	// A status change still has to follow the transition table.
	if req.Status != nil && *req.Status != "" && *req.Status != s.Status {
		if err := domain.Transition(s, *req.Status); err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	patch.Required(&s.StartDate, req.StartDate)
	patch.Required(&s.EndDate, req.EndDate)
	patch.Required(&s.Location, req.Location)
	patch.Required(&s.Rate, req.Rate)
	patch.Required(&s.PaymentStatus, req.PaymentStatus)
	patch.Optional(&s.Recurring, req.Recurring)
	patch.Optional(&s.TimeSlots, req.TimeSlots)
	patch.Optional(&s.Notes, req.Notes)
	patch.Optional(&s.SpecialInstructions, req.SpecialInstructions)

	if err := domain.ValidateRange(s.StartDate, s.EndDate); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.store.Schedules().Update(c.Request.Context(), s); err != nil {
		httperr.Respond(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "schedule_updated", "schedule", s.ID, nil)
	httpresp.Entity(c, http.StatusOK, "Schedule updated successfully", "schedule", s)
}

func (h *ScheduleHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, scheduleNotFoundCode, scheduleNotFoundMsg)
	if !ok {
		return
	}

	var req ScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	s, err := h.changeStatus.Execute(c.Request.Context(), middleware.CurrentPrincipal(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Entity(c, http.StatusOK, "Schedule status updated successfully", "schedule", s)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	s, ok := h.loadOwned(c, "Not authorized to delete this schedule")
	if !ok {
		return
	}

	if err := h.store.Schedules().Delete(c.Request.Context(), s.ID); err != nil {
		httperr.Respond(c, notFoundOr(err, scheduleNotFoundCode, scheduleNotFoundMsg))
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "schedule_deleted", "schedule", s.ID, nil)
	httpresp.Message(c, "Schedule deleted successfully")
}
