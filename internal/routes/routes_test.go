package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/cache"
	"github.com/BruksfildServices01/daycare-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/daycare-manager/internal/db"
	"github.com/BruksfildServices01/daycare-manager/internal/infra/memory"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/payments"
	"github.com/BruksfildServices01/daycare-manager/internal/storage"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
	"github.com/BruksfildServices01/daycare-manager/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	r       *gin.Engine
	store   *memory.Store
	tokens  *auth.TokenManager
	gateway *payments.Fake
}

func newApp(t *testing.T) *testApp {
	t.Helper()
	require.NoError(t, validators.Register())

	cfg := &config.Config{
		ClientURL:      "http://localhost:5173",
		AuthRateLimit:  1000,
		AuthRateWindow: time.Minute,
	}

	st := memory.New()
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	dispatcher := audit.NewDispatcher(audit.New(st.ActivityLogs()))
	t.Cleanup(dispatcher.Close)
	gateway := payments.NewFake()

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:   cfg,
		Store:    st,
		Tokens:   tokens,
		Audit:    dispatcher,
		Notifier: notify.New(st, nil),
		Cache:    cache.Nop{},
		Uploader: storage.NewMemory("https://files.test"),
		Gateway:  gateway,
	})

	return &testApp{r: r, store: st, tokens: tokens, gateway: gateway}
}

// user stores a user with password "secret123" and returns it with an access token.
func (a *testApp) user(t *testing.T, role models.Role, email string) (*models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	u := &models.User{
		FirstName:    "Test",
		LastName:     string(role),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, a.store.Users().Create(context.Background(), u))

	pair, err := a.tokens.IssuePair(u.ID, u.Role)
	require.NoError(t, err)
	return u, pair.AccessToken
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (a *testApp) createChild(t *testing.T, token string, body gin.H) models.Child {
	t.Helper()
	payload := gin.H{
		"firstName":   "Ana",
		"lastName":    "Silva",
		"dateOfBirth": "2020-03-14",
		"gender":      "Female",
	}
	for k, v := range body {
		payload[k] = v
	}
	w := a.do(t, http.MethodPost, "/api/children", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Child](t, w)
}

// ======================================================
// Infra routes
// ======================================================

func TestHealthAndUnknownRoute(t *testing.T) {
	app := newApp(t)

	w := app.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[gin.H](t, w)["status"])

	w = app.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route_not_found", decode[errorBody](t, w).Error)
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	app := newApp(t)

	w := app.do(t, http.MethodGet, "/api/children", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/children", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ======================================================
// Auth
// ======================================================

func TestRegisterAndLogin(t *testing.T) {
	app := newApp(t)

	register := gin.H{
		"firstName": "Maria",
		"lastName":  "Souza",
		"email":     "Maria@Example.com",
		"password":  "secret123",
	}

	w := app.do(t, http.MethodPost, "/api/auth/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode[struct {
		User struct {
			ID    uuid.UUID   `json:"id"`
			Email string      `json:"email"`
			Role  models.Role `json:"role"`
		} `json:"user"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}](t, w)
	assert.Equal(t, "maria@example.com", body.User.Email)
	assert.Equal(t, models.RoleParent, body.User.Role)
	assert.NotEmpty(t, body.AccessToken)
	assert.NotEmpty(t, body.RefreshToken)
	assert.NotContains(t, w.Body.String(), "password")

	// duplicate e-mail, whatever the case
	register["email"] = "maria@example.COM"
	w = app.do(t, http.MethodPost, "/api/auth/register", "", register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_exists", decode[errorBody](t, w).Error)

	// failed login leaves lastLogin untouched
	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "maria@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode[errorBody](t, w).Error)

	stored, err := app.store.Users().Get(context.Background(), body.User.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LastLogin)

	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "maria@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err = app.store.Users().Get(context.Background(), body.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)

	// refresh issues a new pair
	w = app.do(t, http.MethodPost, "/api/auth/refresh-token", "", gin.H{"refreshToken": body.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodPost, "/api/auth/refresh-token", "", gin.H{"refreshToken": body.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": body.RefreshToken})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterRejectsAdminAndBadInput(t *testing.T) {
	app := newApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"firstName": "Eve", "lastName": "Admin", "email": "eve@example.com",
		"password": "secret123", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_role", decode[errorBody](t, w).Error)

	w = app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// Children
// ======================================================

func TestChildCRUDAsAdmin(t *testing.T) {
	app := newApp(t)
	_, adminToken := app.user(t, models.RoleAdmin, "admin@example.com")
	parent, _ := app.user(t, models.RoleParent, "parent@example.com")

	child := app.createChild(t, adminToken, gin.H{"parentId": parent.ID})
	assert.Equal(t, parent.ID, child.ParentID)
	assert.True(t, child.IsActive)
	assert.Equal(t, "2020-03-14", child.DateOfBirth.String())

	path := "/api/children/" + child.ID.String()

	w := app.do(t, http.MethodGet, path, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Child](t, w)
	assert.Equal(t, child.FirstName, got.FirstName)
	assert.Equal(t, child.Gender, got.Gender)

	// empty required fields are ignored, optional ones are applied
	w = app.do(t, http.MethodPut, path, adminToken, gin.H{"firstName": "", "lastName": "Costa", "isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[struct {
		Message string       `json:"message"`
		Child   models.Child `json:"child"`
	}](t, w)
	assert.Equal(t, "Ana", updated.Child.FirstName)
	assert.Equal(t, "Costa", updated.Child.LastName)
	assert.False(t, updated.Child.IsActive)

	w = app.do(t, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "child_not_found", decode[errorBody](t, w).Error)
}

func TestChildCreateValidation(t *testing.T) {
	app := newApp(t)
	_, adminToken := app.user(t, models.RoleAdmin, "admin@example.com")
	_, parentToken := app.user(t, models.RoleParent, "parent@example.com")
	other, _ := app.user(t, models.RoleParent, "other@example.com")

	w := app.do(t, http.MethodPost, "/api/children", parentToken, gin.H{
		"firstName": "Ana", "lastName": "Silva", "gender": "Female",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/children", parentToken, gin.H{
		"firstName": "Ana", "lastName": "Silva", "gender": "Robot", "dateOfBirth": "2020-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/children", parentToken, gin.H{
		"firstName": "Ana", "lastName": "Silva", "gender": "Male", "dateOfBirth": "2020-01-01",
		"parentId": other.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/children", adminToken, gin.H{
		"firstName": "Ana", "lastName": "Silva", "gender": "Male", "dateOfBirth": "2020-01-01",
		"parentId": uuid.New(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "parent_not_found", decode[errorBody](t, w).Error)
}

func TestChildUpdateNotFoundAndForbidden(t *testing.T) {
	app := newApp(t)
	_, ownerToken := app.user(t, models.RoleParent, "owner@example.com")
	_, strangerToken := app.user(t, models.RoleParent, "stranger@example.com")

	child := app.createChild(t, ownerToken, nil)

	w := app.do(t, http.MethodPut, "/api/children/"+uuid.NewString(), ownerToken, gin.H{"firstName": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPut, "/api/children/not-an-id", ownerToken, gin.H{"firstName": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// a missing child wins over a bad body
	w = app.do(t, http.MethodPut, "/api/children/"+uuid.NewString(), ownerToken, gin.H{"gender": "Robot"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = app.do(t, http.MethodPut, "/api/children/"+child.ID.String(), ownerToken, gin.H{"gender": "Robot"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, "/api/children/"+child.ID.String(), strangerToken, gin.H{"firstName": "X"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decode[errorBody](t, w).Error)

	w = app.do(t, http.MethodDelete, "/api/children/"+child.ID.String(), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := app.store.Children().Get(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.FirstName)
}

func TestListsAreScopedAndStable(t *testing.T) {
	app := newApp(t)
	_, adminToken := app.user(t, models.RoleAdmin, "admin@example.com")
	_, aToken := app.user(t, models.RoleParent, "a@example.com")
	_, bToken := app.user(t, models.RoleParent, "b@example.com")

	mine := app.createChild(t, aToken, gin.H{"firstName": "Mine"})
	app.createChild(t, bToken, gin.H{"firstName": "Theirs"})

	first := app.do(t, http.MethodGet, "/api/children", aToken, nil)
	require.Equal(t, http.StatusOK, first.Code)
	list := decode[[]models.Child](t, first)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	second := app.do(t, http.MethodGet, "/api/children", aToken, nil)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	w := app.do(t, http.MethodGet, "/api/children", adminToken, nil)
	assert.Len(t, decode[[]models.Child](t, w), 2)

	// empty lists are arrays, not null
	w = app.do(t, http.MethodGet, "/api/finance", bToken, nil)
	assert.Equal(t, "[]", w.Body.String())
}

// ======================================================
// Schedules
// ======================================================

func TestScheduleLifecycle(t *testing.T) {
	app := newApp(t)
	parent, parentToken := app.user(t, models.RoleParent, "parent@example.com")
	sitter, sitterToken := app.user(t, models.RoleBabysitter, "sitter@example.com")
	_, strangerToken := app.user(t, models.RoleParent, "stranger@example.com")

	child := app.createChild(t, parentToken, nil)

	w := app.do(t, http.MethodPost, "/api/schedules", parentToken, gin.H{
		"childId":      child.ID,
		"babysitterId": sitter.ID,
		"startDate":    "2026-11-02",
		"endDate":      "2026-11-06",
		"location":     "Home",
		"rate":         25,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	s := decode[models.Schedule](t, w)
	assert.Equal(t, parent.ID, s.ParentID)
	assert.Equal(t, models.SchedulePending, s.Status)

	path := "/api/schedules/" + s.ID.String()

	// the babysitter now sees the child
	w = app.do(t, http.MethodGet, "/api/children/"+child.ID.String(), sitterToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// an empty status in a PUT keeps the stored one
	w = app.do(t, http.MethodPut, path, parentToken, gin.H{"status": "", "notes": "bring lunch"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored, err := app.store.Schedules().Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SchedulePending, stored.Status)
	assert.Equal(t, "bring lunch", stored.Notes)

	w = app.do(t, http.MethodPut, path, parentToken, gin.H{"endDate": "2026-11-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, path+"/status", sitterToken, gin.H{"status": "Confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodPut, path+"/status", sitterToken, gin.H{"status": "Pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_state", decode[errorBody](t, w).Error)

	w = app.do(t, http.MethodGet, "/api/schedules?status=Confirmed", sitterToken, nil)
	assert.Len(t, decode[[]models.Schedule](t, w), 1)

	w = app.do(t, http.MethodGet, "/api/schedules", strangerToken, nil)
	assert.Empty(t, decode[[]models.Schedule](t, w))
}

func TestScheduleCreateRejectsForeignChild(t *testing.T) {
	app := newApp(t)
	_, ownerToken := app.user(t, models.RoleParent, "owner@example.com")
	_, otherToken := app.user(t, models.RoleParent, "other@example.com")
	sitter, _ := app.user(t, models.RoleBabysitter, "sitter@example.com")

	child := app.createChild(t, ownerToken, nil)

	w := app.do(t, http.MethodPost, "/api/schedules", otherToken, gin.H{
		"childId":      child.ID,
		"babysitterId": sitter.ID,
		"startDate":    "2026-11-02",
		"endDate":      "2026-11-02",
		"location":     "Home",
		"rate":         20,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	list, err := app.store.Schedules().List(context.Background(), store.ScheduleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ======================================================
// Finance
// ======================================================

func TestFinanceCheckoutAndWebhook(t *testing.T) {
	app := newApp(t)
	_, parentToken := app.user(t, models.RoleParent, "parent@example.com")
	_, strangerToken := app.user(t, models.RoleParent, "stranger@example.com")

	w := app.do(t, http.MethodPost, "/api/finance", parentToken, gin.H{
		"type":          "Payment",
		"amount":        150.5,
		"description":   "November care",
		"paymentMethod": "Credit Card",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decode[models.Finance](t, w)
	assert.Equal(t, models.FinancePending, rec.Status)
	assert.False(t, rec.Date.IsZero())

	w = app.do(t, http.MethodGet, "/api/finances/"+rec.ID.String(), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/finance/"+rec.ID.String()+"/checkout", parentToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://checkout.test/pref-1", decode[gin.H](t, w)["checkoutUrl"])

	app.gateway.SetPayment(42, payments.PaymentInfo{Status: "approved", ExternalReference: rec.ID.String()})

	w = app.do(t, http.MethodPost, "/api/finance/webhooks/mercadopago?type=payment&data.id=42", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := app.store.Finance().Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FinanceCompleted, stored.Status)
	assert.Equal(t, "42", stored.TransactionID)

	// completed records cannot be checked out again
	w = app.do(t, http.MethodPost, "/api/finance/"+rec.ID.String()+"/checkout", parentToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/finance/summary", parentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 150.5, decode[gin.H](t, w)["totalIncome"], 0.001)

	// other topics are acknowledged and ignored
	w = app.do(t, http.MethodPost, "/api/finance/webhooks/mercadopago", "", gin.H{"type": "merchant_order"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/finance/webhooks/mercadopago?type=payment&data.id=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// payments that reference no record here are acknowledged so the gateway stops retrying
	app.gateway.SetPayment(43, payments.PaymentInfo{Status: "approved", ExternalReference: "order-77"})
	w = app.do(t, http.MethodPost, "/api/finance/webhooks/mercadopago?type=payment&data.id=43", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Notification ignored", decode[gin.H](t, w)["message"])

	app.gateway.SetPayment(44, payments.PaymentInfo{Status: "approved", ExternalReference: uuid.NewString()})
	w = app.do(t, http.MethodPost, "/api/finance/webhooks/mercadopago?type=payment&data.id=44", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ======================================================
// Notifications
// ======================================================

func TestNotificationInbox(t *testing.T) {
	app := newApp(t)
	admin, adminToken := app.user(t, models.RoleAdmin, "admin@example.com")
	parent, parentToken := app.user(t, models.RoleParent, "parent@example.com")
	_, strangerToken := app.user(t, models.RoleParent, "stranger@example.com")

	w := app.do(t, http.MethodPost, "/api/notifications", adminToken, gin.H{
		"recipientId": uuid.New(), "type": "System", "title": "Hi", "message": "Welcome",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPost, "/api/notifications", adminToken, gin.H{
		"recipientId": parent.ID, "type": "System", "title": "Hi", "message": "Welcome",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	n := decode[models.Notification](t, w)
	assert.Equal(t, models.NotificationUnread, n.Status)
	require.NotNil(t, n.SenderID)
	assert.Equal(t, admin.ID, *n.SenderID)

	w = app.do(t, http.MethodGet, "/api/notifications/unread/count", parentToken, nil)
	assert.EqualValues(t, 1, decode[gin.H](t, w)["count"])

	path := fmt.Sprintf("/api/notifications/%s", n.ID)
	w = app.do(t, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPut, path+"/read", parentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/notifications/unread/count", parentToken, nil)
	assert.EqualValues(t, 0, decode[gin.H](t, w)["count"])

	w = app.do(t, http.MethodGet, "/api/notifications?box=sent", adminToken, nil)
	assert.Len(t, decode[[]models.Notification](t, w), 1)

	w = app.do(t, http.MethodGet, "/api/notifications/preferences", parentToken, nil)
	assert.Equal(t, true, decode[gin.H](t, w)["emailEnabled"])

	w = app.do(t, http.MethodPut, "/api/notifications/preferences", parentToken, gin.H{"emailEnabled": false})
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, "/api/notifications/preferences", parentToken, nil)
	assert.Equal(t, false, decode[gin.H](t, w)["emailEnabled"])
}

// ======================================================
// Admin surfaces
// ======================================================

func TestAdminOnlyRoutes(t *testing.T) {
	app := newApp(t)
	_, adminToken := app.user(t, models.RoleAdmin, "admin@example.com")
	_, parentToken := app.user(t, models.RoleParent, "parent@example.com")

	for _, path := range []string{"/api/users", "/api/activity-logs", "/api/reports/overview"} {
		w := app.do(t, http.MethodGet, path, parentToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)

		w = app.do(t, http.MethodGet, path, adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := app.do(t, http.MethodGet, "/api/activity-logs?page=0&limit=1000", adminToken, nil)
	body := decode[gin.H](t, w)
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 50, body["limit"])
}

func TestDashboardStats(t *testing.T) {
	app := newApp(t)
	_, parentToken := app.user(t, models.RoleParent, "parent@example.com")

	app.createChild(t, parentToken, nil)
	app.createChild(t, parentToken, gin.H{"firstName": "Bia"})

	w := app.do(t, http.MethodGet, "/api/dashboard/stats", parentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[struct {
		TotalChildren     int64   `json:"totalChildren"`
		ActiveBabysitters int64   `json:"activeBabysitters"`
		PendingRequests   int64   `json:"pendingRequests"`
		TotalEarnings     float64 `json:"totalEarnings"`
	}](t, w)
	assert.EqualValues(t, 2, stats.TotalChildren)
	assert.Zero(t, stats.PendingRequests)
	assert.Zero(t, stats.TotalEarnings)
}

func TestAdminChildJourney(t *testing.T) {
	app := newApp(t)
	require.NoError(t, dbpkg.SeedAdmin(context.Background(), app.store, "admin@example.com", "admin123"))
	parent, _ := app.user(t, models.RoleParent, "parent@example.com")

	w := app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[struct {
		AccessToken string `json:"accessToken"`
	}](t, w).AccessToken

	w = app.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/me/navigation", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", decode[gin.H](t, w)["role"])

	child := app.createChild(t, token, gin.H{"firstName": "Caio", "parentId": parent.ID})

	w = app.do(t, http.MethodGet, "/api/children", token, nil)
	list := decode[[]models.Child](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Caio", list[0].FirstName)

	w = app.do(t, http.MethodPut, "/api/children/"+child.ID.String(), token, gin.H{
		"medicalInfo": gin.H{"allergies": []string{"peanuts"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/children", token, nil)
	list = decode[[]models.Child](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"peanuts"}, list[0].MedicalInfo.Allergies)

	w = app.do(t, http.MethodDelete, "/api/children/"+child.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/children", token, nil)
	assert.Empty(t, decode[[]models.Child](t, w))
}
