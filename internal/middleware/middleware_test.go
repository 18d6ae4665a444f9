package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager("secret", "refresh", time.Hour, time.Hour)
}

func protectedRouter(tokens *auth.TokenManager, roles ...models.Role) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	chain := []gin.HandlerFunc{AuthMiddleware(tokens)}
	if len(roles) > 0 {
		chain = append(chain, RoleMiddleware(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		p := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	r.GET("/private", chain...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens()
	r := protectedRouter(tokens)

	id := uuid.New()
	pair, err := tokens.IssuePair(id, models.RoleParent)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing_authorization_header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid_authorization_header"},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, "invalid_token"},
		{"refresh token", "Bearer " + pair.RefreshToken, http.StatusUnauthorized, "invalid_token"},
		{"valid", "Bearer " + pair.AccessToken, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.header)
			assert.Equal(t, tt.status, w.Code)

			if tt.code != "" {
				var body httperr.HTTPError
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.code, body.Code)
				assert.NotEmpty(t, body.Message)
				return
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, id.String(), body["id"])
			assert.Equal(t, "parent", body["role"])
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tokens := newTokens()
	r := protectedRouter(tokens, models.RoleAdmin)

	parent, err := tokens.IssuePair(uuid.New(), models.RoleParent)
	require.NoError(t, err)
	admin, err := tokens.IssuePair(uuid.New(), models.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+parent.AccessToken).Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+admin.AccessToken).Code)
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/err", func(c *gin.Context) {
		_ = c.Error(errors.Wrap(httperr.ErrNotFound("child_not_found", "Child not found"), "load"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "child_not_found")
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimiter(time.Minute, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("http://localhost:5173"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
