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
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/patch"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type UserHandler struct {
	store store.Store
	audit *audit.Dispatcher
}

func NewUserHandler(s store.Store, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{store: s, audit: audit}
}

type CreateUserRequest struct {
	FirstName string      `json:"firstName" binding:"required"`
	LastName  string      `json:"lastName" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=6"`
	Role      models.Role `json:"role" binding:"omitempty,role"`
	Phone     string      `json:"phone"`
}

type UpdateUserRequest struct {
	FirstName      *string      `json:"firstName"`
	LastName       *string      `json:"lastName"`
	Email          *string      `json:"email" binding:"omitempty,email"`
	Phone          *string      `json:"phone"`
	ProfilePicture *string      `json:"profilePicture"`
	Role           *models.Role `json:"role" binding:"omitempty,role"`
}

// ======================================================
// LIST (ADMIN)
// ======================================================
func (h *UserHandler) List(c *gin.Context) {
	role := models.Role(c.Query("role"))
	if role != "" && !access.ValidRole(role) {
		httperr.BadRequest(c, "invalid_role", "Unknown role "+string(role))
		return
	}

	users, err := h.store.Users().List(c.Request.Context(), store.UserFilter{Role: role})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, users)
}

// ======================================================
// CREATE (ADMIN)
// ======================================================
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	ctx := c.Request.Context()
	email := normalizeEmail(req.Email)
	if _, err := h.store.Users().GetByEmail(ctx, email); err == nil {
		httperr.BadRequest(c, "user_exists", "User already exists")
		return
	} else if !store.IsNotFound(err) {
		httperr.Respond(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleParent
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        req.Phone,
	}
	if err := h.store.Users().Create(ctx, &user); err != nil {
		httperr.Respond(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "user_created", "user", user.ID, gin.H{"role": user.Role})

	c.JSON(http.StatusCreated, user)
}

// ======================================================
// GET (ADMIN OR SELF)
// ======================================================
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "user_not_found", "User not found")
	if !ok {
		return
	}

	me := middleware.CurrentPrincipal(c)
	user, err := h.store.Users().Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, "user_not_found", "User not found"))
		return
	}
	if !me.Owns(user.ID) {
		httperr.Forbidden(c, "Not authorized to view this user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ======================================================
// UPDATE (ADMIN OR SELF)
// ======================================================
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "user_not_found", "User not found")
	if !ok {
		return
	}

	me := middleware.CurrentPrincipal(c)
	user, err := h.store.Users().Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, "user_not_found", "User not found"))
		return
	}
	if !me.Owns(user.ID) {
		httperr.Forbidden(c, "Not authorized to update this user")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if req.Role != nil && *req.Role != "" && *req.Role != user.Role && !me.IsAdmin() {
		httperr.Forbidden(c, "Only admins can change roles")
		return
	}

	if err := applyUserPatch(c, h.store, user, req); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(me.ID, "user_updated", "user", user.ID, nil)
	httpresp.Entity(c, http.StatusOK, "User updated successfully", "user", user)
}

// ======================================================
// DELETE (ADMIN)
// ======================================================
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "user_not_found", "User not found")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.Users().Get(ctx, id); err != nil {
		httperr.Respond(c, notFoundOr(err, "user_not_found", "User not found"))
		return
	}
	if err := h.store.Users().Delete(ctx, id); err != nil {
		httperr.Respond(c, notFoundOr(err, "user_not_found", "User not found"))
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "user_deleted", "user", id, nil)
	httpresp.Message(c, "User deleted successfully")
}

// applyUserPatch applies req to user and saves it. A changed e-mail must
// stay unique.
func applyUserPatch(c *gin.Context, s store.Store, user *models.User, req UpdateUserRequest) error {
	ctx := c.Request.Context()

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != "" && email != user.Email {
			if _, err := s.Users().GetByEmail(ctx, email); err == nil {
				return httperr.ErrInvalid("user_exists", "User already exists")
			} else if !store.IsNotFound(err) {
				return err
			}
		}
		req.Email = &email
	}

	patch.Required(&user.FirstName, req.FirstName)
	patch.Required(&user.LastName, req.LastName)
	patch.Required(&user.Email, req.Email)
	patch.Required(&user.Role, req.Role)
	patch.Optional(&user.Phone, req.Phone)
	patch.Optional(&user.ProfilePicture, req.ProfilePicture)

	return s.Users().Update(ctx, user)
}
