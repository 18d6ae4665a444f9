package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/httpresp"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type MeHandler struct {
	store store.Store
	audit *audit.Dispatcher
}

func NewMeHandler(s store.Store, audit *audit.Dispatcher) *MeHandler {
	return &MeHandler{store: s, audit: audit}
}

type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profilePicture"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	user, err := h.store.Users().Get(c.Request.Context(), me.ID)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, "user_not_found", "User not found"))
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	user, err := h.store.Users().Get(c.Request.Context(), me.ID)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, "user_not_found", "User not found"))
		return
	}

	err = applyUserPatch(c, h.store, user, UpdateUserRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Entity(c, http.StatusOK, "Profile updated successfully", "user", user)
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()
	user, err := h.store.Users().Get(ctx, me.ID)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, "user_not_found", "User not found"))
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		httperr.BadRequest(c, "invalid_password", "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	user.PasswordHash = hash
	if err := h.store.Users().Update(ctx, user); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(me.ID, "password_changed", "user", me.ID, nil)
	httpresp.Message(c, "Password updated successfully")
}

// Navigation serves the menu for the caller's role.
func (h *MeHandler) Navigation(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)
	c.JSON(http.StatusOK, gin.H{
		"role":  me.Role,
		"items": access.Menu(me.Role),
	})
}
