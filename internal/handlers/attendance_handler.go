package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/attendance"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/httpresp"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/patch"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type AttendanceHandler struct {
	store  store.Store
	audit  *audit.Dispatcher
	notify *notify.Notifier
}

func NewAttendanceHandler(s store.Store, audit *audit.Dispatcher, n *notify.Notifier) *AttendanceHandler {
	return &AttendanceHandler{store: s, audit: audit, notify: n}
}

type CreateAttendanceRequest struct {
	ChildID         uuid.UUID               `json:"childId" binding:"required"`
	BabysitterID    *uuid.UUID              `json:"babysitterId"`
	Date            models.Date             `json:"date"`
	CheckIn         models.CheckPoint       `json:"checkIn"`
	CheckOut        models.CheckPoint       `json:"checkOut"`
	Status          models.AttendanceStatus `json:"status" binding:"omitempty,attendance_status"`
	Activities      []models.Activity       `json:"activities"`
	Meals           []models.Meal           `json:"meals" binding:"omitempty,dive"`
	Naps            []models.Nap            `json:"naps"`
	Incidents       []models.Incident       `json:"incidents" binding:"omitempty,dive"`
	ParentNotes     string                  `json:"parentNotes"`
	BabysitterNotes string                  `json:"babysitterNotes"`
}

type UpdateAttendanceRequest struct {
	Date            *models.Date             `json:"date"`
	CheckIn         *models.CheckPoint       `json:"checkIn"`
	CheckOut        *models.CheckPoint       `json:"checkOut"`
	Status          *models.AttendanceStatus `json:"status" binding:"omitempty,attendance_status"`
	Activities      *[]models.Activity       `json:"activities"`
	Meals           *[]models.Meal           `json:"meals" binding:"omitempty,dive"`
	Naps            *[]models.Nap            `json:"naps"`
	Incidents       *[]models.Incident       `json:"incidents" binding:"omitempty,dive"`
	ParentNotes     *string                  `json:"parentNotes"`
	BabysitterNotes *string                  `json:"babysitterNotes"`
}

type CheckOutRequest struct {
	Time     *time.Time `json:"time"`
	Location string     `json:"location"`
	Notes    string     `json:"notes"`
}

const (
	attendanceNotFoundCode = "attendance_not_found"
	attendanceNotFoundMsg  = "Attendance record not found"
)

// ======================================================
// ACCESS
// ======================================================

// parentOf resolves the owning parent of a record's child.
func (h *AttendanceHandler) parentOf(ctx context.Context, a *models.Attendance) (uuid.UUID, error) {
	if a.Child != nil {
		return a.Child.ParentID, nil
	}
	child, err := h.store.Children().Get(ctx, a.ChildID)
	if err != nil {
		if store.IsNotFound(err) {
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return child.ParentID, nil
}

// loadOwned loads :id for admins, the child's parent and the record's babysitter.
func (h *AttendanceHandler) loadOwned(c *gin.Context, denied string) (*models.Attendance, bool) {
	id, ok := pathID(c, attendanceNotFoundCode, attendanceNotFoundMsg)
	if !ok {
		return nil, false
	}

	ctx := c.Request.Context()
	a, err := h.store.Attendance().Get(ctx, id)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, attendanceNotFoundCode, attendanceNotFoundMsg))
		return nil, false
	}

	parentID, err := h.parentOf(ctx, a)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	if !middleware.CurrentPrincipal(c).Owns(parentID, a.BabysitterID) {
		httperr.Forbidden(c, denied)
		return nil, false
	}
	return a, true
}

// notifyParent tells the parent about a babysitter's entry.
func (h *AttendanceHandler) notifyParent(ctx context.Context, me access.Principal, a *models.Attendance, parentID uuid.UUID, title, msg string) {
	if !me.IsBabysitter() || parentID == me.ID {
		return
	}
	id := a.ID
	h.notify.Send(ctx, notify.Input{
		RecipientID: parentID,
		SenderID:    &me.ID,
		Type:        models.NotificationAttendance,
		Title:       title,
		Message:     msg,
		Related:     models.RelatedTo{Model: "Attendance", ID: &id},
		Priority:    models.PriorityMedium,
		ActionURL:   "/attendance",
	})
}

// ======================================================
// CRUD
// ======================================================

func (h *AttendanceHandler) List(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	f := me.AttendanceScope()
	childID, ok := uuidQuery(c, "child")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "child must be a valid id")
		return
	}
	f.ChildID = childID

	records, err := h.store.Attendance().List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, records)
}

func (h *AttendanceHandler) Create(c *gin.Context) {
	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	child, err := h.store.Children().Get(ctx, req.ChildID)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, childNotFoundCode, childNotFoundMsg))
		return
	}
	if !me.IsBabysitter() && !me.Owns(child.ParentID) {
		httperr.Forbidden(c, "Not authorized to create attendance record for this child")
		return
	}

	babysitterID := me.ID
	if req.BabysitterID != nil && *req.BabysitterID != uuid.Nil && *req.BabysitterID != me.ID {
		if !me.IsAdmin() {
			httperr.Forbidden(c, "Not authorized to record attendance for another babysitter")
			return
		}
		sitter, err := h.store.Users().Get(ctx, *req.BabysitterID)
		if err != nil {
			httperr.Respond(c, notFoundOr(err, babysitterNotFoundCode, babysitterNotFoundMsg))
			return
		}
		if sitter.Role != models.RoleBabysitter {
			httperr.BadRequest(c, "invalid_babysitter", "User is not a babysitter")
			return
		}
		babysitterID = sitter.ID
	}

	date := req.Date
	if date.IsZero() {
		date = today()
	}
	status := req.Status
	if status == "" {
		status = models.AttendancePresent
	}

	rec := models.Attendance{
		ChildID:         child.ID,
		BabysitterID:    babysitterID,
		Date:            date,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Status:          status,
		Activities:      req.Activities,
		Meals:           req.Meals,
		Naps:            req.Naps,
		Incidents:       req.Incidents,
		ParentNotes:     req.ParentNotes,
		BabysitterNotes: req.BabysitterNotes,
	}
	if err := h.store.Attendance().Create(ctx, &rec); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(me.ID, "attendance_created", "attendance", rec.ID, gin.H{"childId": child.ID})
	h.notifyParent(ctx, me, &rec, child.ParentID, "Attendance recorded",
		fmt.Sprintf("%s was marked %s on %s.", child.FullName(), rec.Status, rec.Date))

	c.JSON(http.StatusCreated, rec)
}

func (h *AttendanceHandler) Get(c *gin.Context) {
	a, ok := h.loadOwned(c, "Not authorized to view this record")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AttendanceHandler) Update(c *gin.Context) {
	a, ok := h.loadOwned(c, "Not authorized to update this record")
	if !ok {
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	patch.Required(&a.Date, req.Date)
	patch.Required(&a.Status, req.Status)
	patch.Optional(&a.CheckIn, req.CheckIn)
	patch.Optional(&a.CheckOut, req.CheckOut)
	patch.Optional(&a.Activities, req.Activities)
	patch.Optional(&a.Meals, req.Meals)
	patch.Optional(&a.Naps, req.Naps)
	patch.Optional(&a.Incidents, req.Incidents)
	patch.Optional(&a.ParentNotes, req.ParentNotes)
	patch.Optional(&a.BabysitterNotes, req.BabysitterNotes)

	if err := h.store.Attendance().Update(c.Request.Context(), a); err != nil {
		httperr.Respond(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "attendance_updated", "attendance", a.ID, nil)
	httpresp.Entity(c, http.StatusOK, "Attendance record updated successfully", "record", a)
}

func (h *AttendanceHandler) Delete(c *gin.Context) {
	a, ok := h.loadOwned(c, "Not authorized to delete this record")
	if !ok {
		return
	}

	if err := h.store.Attendance().Delete(c.Request.Context(), a.ID); err != nil {
		httperr.Respond(c, notFoundOr(err, attendanceNotFoundCode, attendanceNotFoundMsg))
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "attendance_deleted", "attendance", a.ID, nil)
	httpresp.Message(c, "Attendance record deleted successfully")
}

// CheckOut closes the day for a record; time defaults to now.
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	a, ok := h.loadOwned(c, "Not authorized to update this record")
	if !ok {
		return
	}

	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	at := clock()
	if req.Time != nil {
		at = *req.Time
	}
	a.CheckOut = models.CheckPoint{Time: &at, Location: req.Location, Notes: req.Notes}

	ctx := c.Request.Context()
	if err := h.store.Attendance().Update(ctx, a); err != nil {
		httperr.Respond(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "attendance_checked_out", "attendance", a.ID, nil)

	if parentID, err := h.parentOf(ctx, a); err == nil {
		h.notifyParent(ctx, me, a, parentID, "Checked out",
			fmt.Sprintf("Check-out recorded at %s.", at.Format("15:04")))
	}

	httpresp.Entity(c, http.StatusOK, "Checked out successfully", "record", a)
}

// ======================================================
// REPORTS
// ======================================================

func (h *AttendanceHandler) Reports(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)
	f := me.AttendanceScope()

	from, to, ok := dateRange(c)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "startDate and endDate must be dates")
		return
	}
	f.From, f.To = from, to

	childID, ok := uuidQuery(c, "child")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "child must be a valid id")
		return
	}
	f.ChildID = childID

	if s := models.AttendanceStatus(c.Query("status")); s != "" {
		if !attendance.ValidStatus(s) {
			httperr.BadRequest(c, "invalid_status", "Unknown attendance status "+string(s))
			return
		}
		f.Status = s
	}

	records, err := h.store.Attendance().List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if records == nil {
		records = []models.Attendance{}
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"summary": attendance.Summarize(records),
	})
}
