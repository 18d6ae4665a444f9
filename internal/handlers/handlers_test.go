package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/infra/memory"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/storage"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
	"github.com/BruksfildServices01/daycare-manager/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return fixedNow }
	t.Cleanup(func() { clock = prev })
}

// as stands in for AuthMiddleware.
func as(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, u.ID)
		c.Set(middleware.ContextUserRole, u.Role)
		c.Next()
	}
}

func seedUser(t *testing.T, s store.Store, role models.Role, email string) *models.User {
	t.Helper()
	u := &models.User{FirstName: "T", LastName: string(role), Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func seedChild(t *testing.T, s store.Store, parent *models.User) *models.Child {
	t.Helper()
	c := &models.Child{
		FirstName:   "Leo",
		LastName:    "Lima",
		DateOfBirth: models.NewDate(2021, time.May, 2),
		Gender:      models.GenderMale,
		ParentID:    parent.ID,
		IsActive:    true,
	}
	require.NoError(t, s.Children().Create(context.Background(), c))
	return c
}

func serve(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// ======================================================
// Attendance
// ======================================================

func attendanceRouter(s store.Store, u *models.User) *gin.Engine {
	h := NewAttendanceHandler(s, nil, notify.New(s, nil))
	r := gin.New()
	g := r.Group("/attendance", as(u))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/reports", h.Reports)
	g.PUT("/:id", h.Update)
	g.POST("/:id/check-out", h.CheckOut)
	return r
}

func TestAttendanceCreateDefaultsAndNotifies(t *testing.T) {
	freezeClock(t)
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	sitter := seedUser(t, s, models.RoleBabysitter, "s@example.com")
	child := seedChild(t, s, parent)

	w := serve(attendanceRouter(s, sitter), http.MethodPost, "/attendance", gin.H{"childId": child.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	rec := decodeJSON[models.Attendance](t, w)
	assert.Equal(t, "2026-03-10", rec.Date.String())
	assert.Equal(t, models.AttendancePresent, rec.Status)
	assert.Equal(t, sitter.ID, rec.BabysitterID)

	inbox, err := s.Notifications().List(context.Background(), store.NotificationFilter{RecipientID: &parent.ID})
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, models.NotificationAttendance, inbox[0].Type)
}

func TestAttendanceCreateByParentNotifiesNobody(t *testing.T) {
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	child := seedChild(t, s, parent)

	w := serve(attendanceRouter(s, parent), http.MethodPost, "/attendance", gin.H{"childId": child.ID, "date": "2026-03-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, parent.ID, decodeJSON[models.Attendance](t, w).BabysitterID)

	n, err := s.Notifications().Count(context.Background(), store.NotificationFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAttendanceCreateRules(t *testing.T) {
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	stranger := seedUser(t, s, models.RoleParent, "x@example.com")
	sitter := seedUser(t, s, models.RoleBabysitter, "s@example.com")
	child := seedChild(t, s, parent)

	w := serve(attendanceRouter(s, stranger), http.MethodPost, "/attendance", gin.H{"childId": child.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(attendanceRouter(s, sitter), http.MethodPost, "/attendance", gin.H{"childId": uuid.New()})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(attendanceRouter(s, sitter), http.MethodPost, "/attendance", gin.H{"childId": child.ID, "status": "Sleeping"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	other := seedUser(t, s, models.RoleBabysitter, "o@example.com")
	w = serve(attendanceRouter(s, sitter), http.MethodPost, "/attendance", gin.H{"childId": child.ID, "babysitterId": other.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAttendanceCheckOutAndReports(t *testing.T) {
	freezeClock(t)
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	sitter := seedUser(t, s, models.RoleBabysitter, "s@example.com")
	child := seedChild(t, s, parent)
	r := attendanceRouter(s, sitter)

	in := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	w := serve(r, http.MethodPost, "/attendance", gin.H{
		"childId": child.ID,
		"checkIn": gin.H{"time": in, "location": "Home"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decodeJSON[models.Attendance](t, w)

	w = serve(r, http.MethodPost, "/attendance/"+rec.ID.String()+"/check-out", gin.H{"location": "School"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decodeJSON[struct {
		Record models.Attendance `json:"record"`
	}](t, w)
	require.NotNil(t, out.Record.CheckOut.Time)
	assert.True(t, fixedNow.Equal(*out.Record.CheckOut.Time))
	assert.Equal(t, "School", out.Record.CheckOut.Location)

	// the parent can read the report for their child; a stranger sees nothing
	w = serve(attendanceRouter(s, parent), http.MethodGet, "/attendance/reports?startDate=2026-03-01&endDate=2026-03-31", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decodeJSON[struct {
		Records []models.Attendance `json:"records"`
		Summary struct {
			TotalRecords        int     `json:"totalRecords"`
			AverageCheckInTime  *string `json:"averageCheckInTime"`
			AverageCheckOutTime *string `json:"averageCheckOutTime"`
		} `json:"summary"`
	}](t, w)
	assert.Len(t, report.Records, 1)
	assert.Equal(t, 1, report.Summary.TotalRecords)
	require.NotNil(t, report.Summary.AverageCheckInTime)
	assert.Equal(t, "08:00:00", *report.Summary.AverageCheckInTime)
	require.NotNil(t, report.Summary.AverageCheckOutTime)
	assert.Equal(t, "09:30:00", *report.Summary.AverageCheckOutTime)

	stranger := seedUser(t, s, models.RoleParent, "x@example.com")
	w = serve(attendanceRouter(s, stranger), http.MethodGet, "/attendance", nil)
	assert.Equal(t, "[]", w.Body.String())

	w = serve(r, http.MethodGet, "/attendance/reports?startDate=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceUpdateKeepsStatusOnEmptyValue(t *testing.T) {
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	sitter := seedUser(t, s, models.RoleBabysitter, "s@example.com")
	child := seedChild(t, s, parent)
	r := attendanceRouter(s, sitter)

	w := serve(r, http.MethodPost, "/attendance", gin.H{"childId": child.ID, "status": "Late"})
	require.Equal(t, http.StatusCreated, w.Code)
	rec := decodeJSON[models.Attendance](t, w)

	w = serve(r, http.MethodPut, "/attendance/"+rec.ID.String(), gin.H{"status": "", "babysitterNotes": "ate well"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := s.Attendance().Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceLate, stored.Status)
	assert.Equal(t, "ate well", stored.BabysitterNotes)

	w = serve(attendanceRouter(s, parent), http.MethodPut, "/attendance/"+uuid.NewString(), gin.H{"parentNotes": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ======================================================
// Babysitters
// ======================================================

func babysitterRouter(s store.Store, u *models.User) *gin.Engine {
	h := NewBabysitterHandler(s, nil, notify.New(s, nil))
	r := gin.New()
	g := r.Group("/babysitters", as(u))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.POST("/:id/reviews", h.AddReview)
	g.GET("/:id/schedule", h.Schedule)
	return r
}

func TestBabysitterProfileAndReviews(t *testing.T) {
	freezeClock(t)
	s := memory.New()
	admin := seedUser(t, s, models.RoleAdmin, "a@example.com")
	sitterUser := seedUser(t, s, models.RoleBabysitter, "s@example.com")
	parent := seedUser(t, s, models.RoleParent, "p@example.com")

	profile := gin.H{
		"userId":      sitterUser.ID,
		"hourlyRate":  30,
		"maxChildren": 3,
		"bio":         "Ten years with toddlers",
		"languages":   []string{"Portuguese", "English"},
	}

	w := serve(babysitterRouter(s, admin), http.MethodPost, "/babysitters", profile)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decodeJSON[models.Babysitter](t, w)
	assert.True(t, b.IsAvailable)

	w = serve(babysitterRouter(s, admin), http.MethodPost, "/babysitters", profile)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	profile["userId"] = parent.ID
	w = serve(babysitterRouter(s, admin), http.MethodPost, "/babysitters", profile)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	profile["userId"] = uuid.New()
	w = serve(babysitterRouter(s, admin), http.MethodPost, "/babysitters", profile)
	assert.Equal(t, http.StatusNotFound, w.Code)

	path := "/babysitters/" + b.ID.String()
	for _, rating := range []int{5, 4} {
		w = serve(babysitterRouter(s, parent), http.MethodPost, path+"/reviews", gin.H{"rating": rating})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w = serve(babysitterRouter(s, parent), http.MethodPost, path+"/reviews", gin.H{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := s.Babysitters().Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stored.Rating, 0.001)
	assert.Len(t, stored.Reviews, 2)

	n, err := s.Notifications().Count(context.Background(), store.NotificationFilter{RecipientID: &sitterUser.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// only the wrapped user or an admin may edit the profile
	w = serve(babysitterRouter(s, parent), http.MethodPut, path, gin.H{"bio": "hacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = serve(babysitterRouter(s, sitterUser), http.MethodPut, path, gin.H{"isAvailable": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(babysitterRouter(s, parent), http.MethodGet, "/babysitters?available=true", nil)
	assert.Equal(t, "[]", w.Body.String())
	w = serve(babysitterRouter(s, parent), http.MethodGet, "/babysitters?language=english", nil)
	assert.Len(t, decodeJSON[[]models.Babysitter](t, w), 1)

	w = serve(babysitterRouter(s, parent), http.MethodGet, path+"/schedule", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = serve(babysitterRouter(s, sitterUser), http.MethodGet, path+"/schedule", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ======================================================
// Finance
// ======================================================

func financeRouter(s store.Store, u *models.User, uploader storage.Uploader) *gin.Engine {
	h := NewFinanceHandler(s, nil, uploader, nil, nil)
	r := gin.New()
	g := r.Group("/finance", as(u))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/reports", h.Reports)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/receipt", h.UploadReceipt)
	return r
}

func multipartReceipt(t *testing.T, path string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("receipt", "receipt.PDF")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestFinanceReceiptUpload(t *testing.T) {
	freezeClock(t)
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	rec := &models.Finance{
		Type: models.FinancePayment, Amount: 10, Description: "Snacks",
		ParentID: parent.ID, Date: models.NewDate(2026, time.March, 1),
		Status: models.FinancePending, PaymentMethod: models.MethodCash,
	}
	require.NoError(t, s.Finance().Create(context.Background(), rec))
	path := "/finance/" + rec.ID.String() + "/receipt"

	w := httptest.NewRecorder()
	financeRouter(s, parent, storage.Disabled{}).ServeHTTP(w, multipartReceipt(t, path))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	financeRouter(s, parent, storage.NewMemory("https://files.test")).ServeHTTP(w, multipartReceipt(t, path))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := s.Finance().Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("https://files.test/receipts/%s/%d.pdf", rec.ID, fixedNow.UnixNano()), stored.Receipt)

	stranger := seedUser(t, s, models.RoleParent, "x@example.com")
	w = httptest.NewRecorder()
	financeRouter(s, stranger, storage.NewMemory("https://files.test")).ServeHTTP(w, multipartReceipt(t, path))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFinanceReportsAndPatch(t *testing.T) {
	s := memory.New()
	admin := seedUser(t, s, models.RoleAdmin, "a@example.com")
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	r := financeRouter(s, admin, storage.Disabled{})

	for _, body := range []gin.H{
		{"type": "Payment", "amount": 100, "description": "March", "paymentMethod": "Cash", "date": "2026-03-05", "parentId": parent.ID},
		{"type": "Expense", "amount": 40, "description": "Toys", "paymentMethod": "Debit Card", "date": "2026-04-02"},
	} {
		w := serve(r, http.MethodPost, "/finance", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := serve(r, http.MethodGet, "/finance/reports?startDate=2026-03-01&endDate=2026-03-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeJSON[[]models.Finance](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, parent.ID, list[0].ParentID)

	w = serve(r, http.MethodGet, "/finance/reports?type=Gift", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPut, "/finance/"+list[0].ID.String(), gin.H{"amount": 0, "status": "", "notes": "paid at desk"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored, err := s.Finance().Get(context.Background(), list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.Amount)
	assert.Equal(t, models.FinancePending, stored.Status)
	assert.Equal(t, "paid at desk", stored.Notes)

	w = serve(financeRouter(s, parent, storage.Disabled{}), http.MethodGet, "/finance", nil)
	assert.Len(t, decodeJSON[[]models.Finance](t, w), 1)

	w = serve(financeRouter(s, parent, storage.Disabled{}), http.MethodPost, "/finance", gin.H{
		"type": "Payment", "amount": 1, "description": "x", "paymentMethod": "Cash", "parentId": admin.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFinanceBabysitterIsReadOnly(t *testing.T) {
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	sitter := seedUser(t, s, models.RoleBabysitter, "s@example.com")

	w := serve(financeRouter(s, parent, storage.Disabled{}), http.MethodPost, "/finance", gin.H{
		"type": "Payment", "amount": 80, "description": "Week 10", "paymentMethod": "Cash", "babysitterId": sitter.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decodeJSON[models.Finance](t, w)
	path := "/finance/" + rec.ID.String()

	sitterRouter := financeRouter(s, sitter, storage.NewMemory("https://files.test"))

	w = serve(sitterRouter, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(sitterRouter, http.MethodPut, path, gin.H{"amount": 1, "status": "Completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(sitterRouter, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	sitterRouter.ServeHTTP(w, multipartReceipt(t, path+"/receipt"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := s.Finance().Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, stored.Amount)
	assert.Equal(t, models.FinancePending, stored.Status)
	assert.Empty(t, stored.Receipt)

	w = serve(financeRouter(s, parent, storage.Disabled{}), http.MethodPut, path, gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestFinanceUpdateLooksUpRecordFirst(t *testing.T) {
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	r := financeRouter(s, parent, storage.Disabled{})

	w := serve(r, http.MethodPut, "/finance/"+uuid.NewString(), gin.H{"amount": "lots"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodPost, "/finance", gin.H{
		"type": "Payment", "amount": 25, "description": "Snacks", "paymentMethod": "Cash",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decodeJSON[models.Finance](t, w)
	path := "/finance/" + rec.ID.String()

	w = serve(r, http.MethodPut, path, gin.H{"amount": "lots"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	before, err := s.Finance().Get(context.Background(), rec.ID)
	require.NoError(t, err)

	// nothing sent, nothing saved
	w = serve(r, http.MethodPut, path, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	after, err := s.Finance().Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
}

func TestBabysitterCreateKeepsExplicitFlagsAndEmptyLists(t *testing.T) {
	s := memory.New()
	admin := seedUser(t, s, models.RoleAdmin, "a@example.com")
	sitterUser := seedUser(t, s, models.RoleBabysitter, "s@example.com")

	w := serve(babysitterRouter(s, admin), http.MethodPost, "/babysitters", gin.H{
		"userId":      sitterUser.ID,
		"hourlyRate":  25,
		"maxChildren": 2,
		"bio":         "Weekends only",
		"isAvailable": false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeJSON[gin.H](t, w)
	assert.Equal(t, false, body["isAvailable"])
	for _, field := range []string{"availability", "qualifications", "certifications", "languages", "reviews"} {
		assert.Equal(t, []any{}, body[field], field)
	}

	stored, err := s.Babysitters().GetByUser(context.Background(), sitterUser.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAvailable)
}

func TestBabysitterConcurrentReviewsAreAllKept(t *testing.T) {
	s := memory.New()
	parent := seedUser(t, s, models.RoleParent, "p@example.com")
	sitterUser := seedUser(t, s, models.RoleBabysitter, "s@example.com")
	b := &models.Babysitter{UserID: sitterUser.ID, HourlyRate: 20, MaxChildren: 2, Bio: "Nights", IsAvailable: true}
	require.NoError(t, s.Babysitters().Create(context.Background(), b))

	r := babysitterRouter(s, parent)
	path := "/babysitters/" + b.ID.String() + "/reviews"

	const reviews = 20
	var wg sync.WaitGroup
	for i := 0; i < reviews; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			w := serve(r, http.MethodPost, path, gin.H{"rating": rating})
			assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}(i%5 + 1)
	}
	wg.Wait()

	stored, err := s.Babysitters().Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Reviews, reviews)
	assert.InDelta(t, 3.0, stored.Rating, 0.001)
}

// ======================================================
// Auth
// ======================================================

func TestRegisterChecksEmailDomain(t *testing.T) {
	s := memory.New()
	known := func(domain string) bool { return domain == "daycare.test" }
	h := NewAuthHandler(s, auth.NewTokenManager("a", "r", time.Hour, time.Hour), nil, known)
	r := gin.New()
	r.POST("/register", h.Register)

	req := gin.H{"firstName": "Ana", "lastName": "Silva", "email": "ana@nowhere.test", "password": "secret123"}
	w := serve(r, http.MethodPost, "/register", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email_domain", decodeJSON[gin.H](t, w)["error"])

	req["email"] = "ana@Daycare.test"
	w = serve(r, http.MethodPost, "/register", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
