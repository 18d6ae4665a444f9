package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/httpresp"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/patch"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type BabysitterHandler struct {
	store  store.Store
	audit  *audit.Dispatcher
	notify *notify.Notifier
}

func NewBabysitterHandler(s store.Store, audit *audit.Dispatcher, n *notify.Notifier) *BabysitterHandler {
	return &BabysitterHandler{store: s, audit: audit, notify: n}
}

type CreateBabysitterRequest struct {
	UserID         uuid.UUID              `json:"userId" binding:"required"`
	HourlyRate     float64                `json:"hourlyRate" binding:"required,gt=0"`
	Availability   []models.TimeWindow    `json:"availability" binding:"omitempty,dive"`
	Experience     int                    `json:"experience" binding:"min=0"`
	Qualifications []string               `json:"qualifications"`
	Certifications []models.Certification `json:"certifications"`
	Languages      []string               `json:"languages"`
	AgeRange       models.AgeRange        `json:"ageRange"`
	MaxChildren    int                    `json:"maxChildren" binding:"required,min=1"`
	Bio            string                 `json:"bio" binding:"required"`
	IsAvailable    *bool                  `json:"isAvailable"`
}

type UpdateBabysitterRequest struct {
	HourlyRate     *float64                `json:"hourlyRate" binding:"omitempty,min=0"`
	Availability   *[]models.TimeWindow    `json:"availability" binding:"omitempty,dive"`
	Experience     *int                    `json:"experience" binding:"omitempty,min=0"`
	Qualifications *[]string               `json:"qualifications"`
	Certifications *[]models.Certification `json:"certifications"`
	Languages      *[]string               `json:"languages"`
	AgeRange       *models.AgeRange        `json:"ageRange"`
	MaxChildren    *int                    `json:"maxChildren" binding:"omitempty,min=0"`
	Bio            *string                 `json:"bio"`
	IsAvailable    *bool                   `json:"isAvailable"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

const (
	babysitterNotFoundCode = "babysitter_not_found"
	babysitterNotFoundMsg  = "Babysitter not found"
)

func (h *BabysitterHandler) load(c *gin.Context) (*models.Babysitter, bool) {
	id, ok := pathID(c, babysitterNotFoundCode, babysitterNotFoundMsg)
	if !ok {
		return nil, false
	}
	b, err := h.store.Babysitters().Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, babysitterNotFoundCode, babysitterNotFoundMsg))
		return nil, false
	}
	return b, true
}

// loadOwned loads :id for admins and the babysitter themself.
func (h *BabysitterHandler) loadOwned(c *gin.Context, denied string) (*models.Babysitter, bool) {
	b, ok := h.load(c)
	if !ok {
		return nil, false
	}
	if !middleware.CurrentPrincipal(c).Owns(b.UserID) {
		httperr.Forbidden(c, denied)
		return nil, false
	}
	return b, true
}

// ======================================================
// CRUD
// ======================================================

func (h *BabysitterHandler) List(c *gin.Context) {
	f := store.BabysitterFilter{
		Available: boolQuery(c, "available"),
		Language:  strings.TrimSpace(c.Query("language")),
	}

	list, err := h.store.Babysitters().List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BabysitterHandler) Create(c *gin.Context) {
	var req CreateBabysitterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.Users().Get(ctx, req.UserID)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, "user_not_found", "User not found"))
		return
	}

	if _, err := h.store.Babysitters().GetByUser(ctx, user.ID); err == nil {
		httperr.BadRequest(c, "already_babysitter", "User is already a babysitter")
		return
	} else if !store.IsNotFound(err) {
		httperr.Respond(c, err)
		return
	}

	if user.Role != models.RoleBabysitter {
		httperr.BadRequest(c, "invalid_role", "User must have the babysitter role")
		return
	}

	b := models.Babysitter{
		UserID:         user.ID,
		HourlyRate:     req.HourlyRate,
		Availability:   req.Availability,
		Experience:     req.Experience,
		Qualifications: req.Qualifications,
		Certifications: req.Certifications,
		Languages:      req.Languages,
		AgeRange:       req.AgeRange,
		MaxChildren:    req.MaxChildren,
		Bio:            req.Bio,
		IsAvailable:    true,
	}
	if req.IsAvailable != nil {
		b.IsAvailable = *req.IsAvailable
	}
	if err := h.store.Babysitters().Create(ctx, &b); err != nil {
		httperr.Respond(c, err)
		return
	}
	b.User = user

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "babysitter_created", "babysitter", b.ID, gin.H{"userId": user.ID})
	c.JSON(http.StatusCreated, b)
}

func (h *BabysitterHandler) Get(c *gin.Context) {
	b, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BabysitterHandler) Update(c *gin.Context) {
	b, ok := h.loadOwned(c, "Not authorized to update this babysitter")
	if !ok {
		return
	}

	var req UpdateBabysitterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	patch.Required(&b.HourlyRate, req.HourlyRate)
	patch.Required(&b.Experience, req.Experience)
	patch.Required(&b.MaxChildren, req.MaxChildren)
	patch.Required(&b.Bio, req.Bio)
	patch.Optional(&b.Availability, req.Availability)
	patch.Optional(&b.Qualifications, req.Qualifications)
	patch.Optional(&b.Certifications, req.Certifications)
	patch.Optional(&b.Languages, req.Languages)
	patch.Optional(&b.AgeRange, req.AgeRange)
	patch.Optional(&b.IsAvailable, req.IsAvailable)

	if err := h.store.Babysitters().Update(c.Request.Context(), b); err != nil {
		httperr.Respond(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "babysitter_updated", "babysitter", b.ID, nil)
	httpresp.Entity(c, http.StatusOK, "Babysitter updated successfully", "babysitter", b)
}

func (h *BabysitterHandler) Delete(c *gin.Context) {
	b, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.store.Babysitters().Delete(c.Request.Context(), b.ID); err != nil {
		httperr.Respond(c, notFoundOr(err, babysitterNotFoundCode, babysitterNotFoundMsg))
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "babysitter_deleted", "babysitter", b.ID, nil)
	httpresp.Message(c, "Babysitter deleted successfully")
}

// ======================================================
// REVIEWS (PARENT)
// ======================================================

func (h *BabysitterHandler) AddReview(c *gin.Context) {
	loaded, ok := h.load(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	// the row stays locked between reading the reviews and saving the new rating
	var b *models.Babysitter
	err := h.store.Tx(ctx, func(tx store.Store) error {
		locked, err := tx.Babysitters().GetForUpdate(ctx, loaded.ID)
		if err != nil {
			return notFoundOr(err, babysitterNotFoundCode, babysitterNotFoundMsg)
		}
		locked.Reviews = append(locked.Reviews, models.Review{
			ParentID: me.ID,
			Rating:   req.Rating,
			Comment:  req.Comment,
			Date:     clock(),
		})
		locked.RecomputeRating()
		if err := tx.Babysitters().Update(ctx, locked); err != nil {
			return err
		}
		b = locked
		return nil
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	b.User = loaded.User

	id := b.ID
	h.notify.Send(ctx, notify.Input{
		RecipientID: b.UserID,
		SenderID:    &me.ID,
		Type:        models.NotificationReview,
		Title:       "New review",
		Message:     fmt.Sprintf("You received a %d-star review.", req.Rating),
		Related:     models.RelatedTo{Model: "Babysitter", ID: &id},
		Priority:    models.PriorityLow,
	})
	h.audit.Record(me.ID, "babysitter_reviewed", "babysitter", b.ID, gin.H{"rating": req.Rating})

	httpresp.Entity(c, http.StatusCreated, "Review added successfully", "babysitter", b)
}

// ======================================================
// SUB-RESOURCES (ADMIN OR SELF)
// ======================================================

func (h *BabysitterHandler) Schedule(c *gin.Context) {
	b, ok := h.loadOwned(c, "Not authorized to view this babysitter's schedule")
	if !ok {
		return
	}
	list, err := h.store.Schedules().List(c.Request.Context(), store.ScheduleFilter{BabysitterID: &b.UserID})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BabysitterHandler) Payments(c *gin.Context) {
	b, ok := h.loadOwned(c, "Not authorized to view this babysitter's payments")
	if !ok {
		return
	}
	list, err := h.store.Finance().List(c.Request.Context(), store.FinanceFilter{BabysitterID: &b.UserID})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BabysitterHandler) Attendance(c *gin.Context) {
	b, ok := h.loadOwned(c, "Not authorized to view this babysitter's attendance")
	if !ok {
		return
	}
	list, err := h.store.Attendance().List(c.Request.Context(), store.AttendanceFilter{BabysitterID: &b.UserID})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}
