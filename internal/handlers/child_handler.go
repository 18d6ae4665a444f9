package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/httpresp"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/patch"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
	childuc "github.com/BruksfildServices01/daycare-manager/internal/usecase/child"
)

type ChildHandler struct {
	store store.Store
	audit *audit.Dispatcher
	photo *childuc.UploadPhoto
}

func NewChildHandler(s store.Store, audit *audit.Dispatcher, photo *childuc.UploadPhoto) *ChildHandler {
	return &ChildHandler{store: s, audit: audit, photo: photo}
}

type CreateChildRequest struct {
	FirstName   string                  `json:"firstName" binding:"required"`
	LastName    string                  `json:"lastName" binding:"required"`
	DateOfBirth models.Date             `json:"dateOfBirth"`
	Gender      models.Gender           `json:"gender" binding:"required,gender"`
	ParentID    *uuid.UUID              `json:"parentId"`
	MedicalInfo models.MedicalInfo      `json:"medicalInfo"`
	Preferences models.ChildPreferences `json:"preferences"`
	Photo       string                  `json:"photo"`
	IsActive    *bool                   `json:"isActive"`
}

type UpdateChildRequest struct {
	FirstName   *string                  `json:"firstName"`
	LastName    *string                  `json:"lastName"`
	DateOfBirth *models.Date             `json:"dateOfBirth"`
	Gender      *models.Gender           `json:"gender" binding:"omitempty,gender"`
	MedicalInfo *models.MedicalInfo      `json:"medicalInfo"`
	Preferences *models.ChildPreferences `json:"preferences"`
	Photo       *string                  `json:"photo"`
	IsActive    *bool                    `json:"isActive"`
}

const (
	childNotFoundCode = "child_not_found"
	childNotFoundMsg  = "Child not found"
)

// ======================================================
// ACCESS
// ======================================================

// canSeeChild: admin, the parent, or a babysitter booked with the child.
func canSeeChild(ctx context.Context, s store.Store, me access.Principal, child *models.Child) (bool, error) {
	if me.Owns(child.ParentID) {
		return true, nil
	}
	if !me.IsBabysitter() {
		return false, nil
	}
	n, err := s.Schedules().Count(ctx, store.ScheduleFilter{ChildID: &child.ID, BabysitterID: &me.ID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (h *ChildHandler) load(c *gin.Context) (*models.Child, bool) {
	id, ok := pathID(c, childNotFoundCode, childNotFoundMsg)
	if !ok {
		return nil, false
	}
	child, err := h.store.Children().Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, childNotFoundCode, childNotFoundMsg))
		return nil, false
	}
	return child, true
}

// loadVisible loads :id and rejects callers that may not see it.
func (h *ChildHandler) loadVisible(c *gin.Context, denied string) (*models.Child, bool) {
	child, ok := h.load(c)
	if !ok {
		return nil, false
	}
	allowed, err := canSeeChild(c.Request.Context(), h.store, middleware.CurrentPrincipal(c), child)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	if !allowed {
		httperr.Forbidden(c, denied)
		return nil, false
	}
	return child, true
}

// ======================================================
// CRUD
// ======================================================

func (h *ChildHandler) List(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	f := me.ChildScope()
	f.Active = boolQuery(c, "active")

	children, err := h.store.Children().List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, children)
}

func (h *ChildHandler) Create(c *gin.Context) {
	var req CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}
	if req.DateOfBirth.IsZero() {
		httperr.BadRequest(c, "invalid_request", "dateOfBirth is required")
		return
	}

	me := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	parentID := me.ID
	if req.ParentID != nil && *req.ParentID != uuid.Nil && *req.ParentID != me.ID {
		if !me.IsAdmin() {
			httperr.Forbidden(c, "Not authorized to create a child for another parent")
			return
		}
		parentID = *req.ParentID
	}
	if _, err := h.store.Users().Get(ctx, parentID); err != nil {
		httperr.Respond(c, notFoundOr(err, "parent_not_found", "Parent not found"))
		return
	}

	child := models.Child{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		ParentID:    parentID,
		MedicalInfo: req.MedicalInfo,
		Preferences: req.Preferences,
		Photo:       req.Photo,
		IsActive:    true,
	}
	if req.IsActive != nil {
		child.IsActive = *req.IsActive
	}

	if err := h.store.Children().Create(ctx, &child); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(me.ID, "child_created", "child", child.ID, gin.H{"parentId": parentID})
	c.JSON(http.StatusCreated, child)
}

func (h *ChildHandler) Get(c *gin.Context) {
	child, ok := h.loadVisible(c, "Not authorized to view this child")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) Update(c *gin.Context) {
	child, ok := h.loadVisible(c, "Not authorized to update this child")
	if !ok {
		return
	}

	var req UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	patch.Required(&child.FirstName, req.FirstName)
	patch.Required(&child.LastName, req.LastName)
	patch.Required(&child.DateOfBirth, req.DateOfBirth)
	patch.Required(&child.Gender, req.Gender)
	patch.Optional(&child.MedicalInfo, req.MedicalInfo)
	patch.Optional(&child.Preferences, req.Preferences)
	patch.Optional(&child.Photo, req.Photo)
	patch.Optional(&child.IsActive, req.IsActive)

	if err := h.store.Children().Update(c.Request.Context(), child); err != nil {
		httperr.Respond(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "child_updated", "child", child.ID, nil)
	httpresp.Entity(c, http.StatusOK, "Child updated successfully", "child", child)
}

func (h *ChildHandler) Delete(c *gin.Context) {
	child, ok := h.load(c)
	if !ok {
		return
	}

	me := middleware.CurrentPrincipal(c)
	if !me.Owns(child.ParentID) {
		httperr.Forbidden(c, "Not authorized to delete this child")
		return
	}

	if err := h.store.Children().Delete(c.Request.Context(), child.ID); err != nil {
		httperr.Respond(c, notFoundOr(err, childNotFoundCode, childNotFoundMsg))
		return
	}

	h.audit.Record(me.ID, "child_deleted", "child", child.ID, nil)
	httpresp.Message(c, "Child deleted successfully")
}

// ======================================================
// SUB-RESOURCES
// ======================================================

func (h *ChildHandler) Attendance(c *gin.Context) {
	child, ok := h.loadVisible(c, "Not authorized to view this child's attendance")
	if !ok {
		return
	}

	records, err := h.store.Attendance().List(c.Request.Context(), store.AttendanceFilter{ChildID: &child.ID})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, records)
}

func (h *ChildHandler) Schedule(c *gin.Context) {
	child, ok := h.loadVisible(c, "Not authorized to view this child's schedule")
	if !ok {
		return
	}

	schedules, err := h.store.Schedules().List(c.Request.Context(), store.ScheduleFilter{ChildID: &child.ID})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, schedules)
}

// UploadPhoto accepts a multipart "photo" file.
func (h *ChildHandler) UploadPhoto(c *gin.Context) {
	id, ok := pathID(c, childNotFoundCode, childNotFoundMsg)
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "photo file is required")
		return
	}
	if fh.Size > maxUploadSize {
		httperr.BadRequest(c, "file_too_large", "photo must be at most 10MB")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	child, err := h.photo.Execute(c.Request.Context(), middleware.CurrentPrincipal(c), id, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Entity(c, http.StatusOK, "Photo uploaded successfully", "child", child)
}
