package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	"github.com/BruksfildServices01/daycare-manager/internal/dto"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
	"github.com/BruksfildServices01/daycare-manager/internal/validators"
)

type AuthHandler struct {
	store  store.Store
	tokens *auth.TokenManager
	audit  *audit.Dispatcher

	// nil skips the registration domain check
	emailDomains validators.DomainLookup
}

func NewAuthHandler(s store.Store, tokens *auth.TokenManager, audit *audit.Dispatcher, emailDomains validators.DomainLookup) *AuthHandler {
	return &AuthHandler{
		store:        s,
		tokens:       tokens,
		audit:        audit,
		emailDomains: emailDomains,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	FirstName string      `json:"firstName" binding:"required"`
	LastName  string      `json:"lastName" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=6"`
	Role      models.Role `json:"role" binding:"omitempty,role"`
	Phone     string      `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleParent
	}
	if !access.SelfRegistrable(role) {
		httperr.BadRequest(c, "invalid_role", "Admin accounts cannot be self-registered")
		return
	}

	email := normalizeEmail(req.Email)
	if !validators.EmailDomainOK(email, h.emailDomains) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid")
		return
	}

	ctx := c.Request.Context()
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

	user := models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        req.Phone,
	}
	if err := h.store.Users().Create(ctx, &user); err != nil {
		httperr.Respond(c, err)
		return
	}

	pair, err := h.tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(user.ID, "user_registered", "user", user.ID, gin.H{"role": user.Role})

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"user":         dto.NewUserSummary(&user),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.Users().GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if store.IsNotFound(err) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
		return
	}

	now := clock()
	user.LastLogin = &now
	if err := h.store.Users().Update(ctx, user); err != nil {
		httperr.Respond(c, err)
		return
	}

	pair, err := h.tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(user.ID, "login", "user", user.ID, nil)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         dto.NewUserSummary(user),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	if strings.TrimSpace(req.RefreshToken) == "" {
		httperr.Unauthorized(c, "missing_refresh_token", "No refresh token provided")
		return
	}

	claims, err := h.tokens.ParseRefresh(req.RefreshToken)
	if err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Invalid refresh token")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Invalid refresh token")
		return
	}

	user, err := h.store.Users().Get(c.Request.Context(), userID)
	if err != nil {
		if store.IsNotFound(err) {
			httperr.Unauthorized(c, "user_not_found", "User not found")
			return
		}
		httperr.Respond(c, err)
		return
	}

	pair, err := h.tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Logout is stateless: tokens simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// --------- Helpers ---------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

