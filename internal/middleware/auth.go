package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header", "No token provided")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "invalid_authorization_header", "Invalid authorization header")
			return
		}

		claims, err := tokens.ParseAccess(strings.TrimSpace(parts[1]))
		if errors.Is(err, auth.ErrExpiredToken) {
			abortUnauthorized(c, "token_expired", "Token has expired")
			return
		}
		if err != nil {
			abortUnauthorized(c, "invalid_token", "Invalid token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "invalid_token_payload", "Invalid token")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RoleMiddleware must run after AuthMiddleware.
func RoleMiddleware(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "Access denied")
		c.Abort()
	}
}

// CurrentPrincipal returns the caller set by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) access.Principal {
	id, _ := c.Get(ContextUserID)
	role, _ := c.Get(ContextUserRole)

	p := access.Principal{}
	if v, ok := id.(uuid.UUID); ok {
		p.ID = v
	}
	if v, ok := role.(models.Role); ok {
		p.Role = v
	}
	return p
}

func abortUnauthorized(c *gin.Context, code, message string) {
	httperr.Unauthorized(c, code, message)
	c.Abort()
}
