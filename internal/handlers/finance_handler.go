package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/finance"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/httpresp"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/patch"
	"github.com/BruksfildServices01/daycare-manager/internal/storage"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
	childuc "github.com/BruksfildServices01/daycare-manager/internal/usecase/child"
	financeuc "github.com/BruksfildServices01/daycare-manager/internal/usecase/finance"
)

type FinanceHandler struct {
	store    store.Store
	audit    *audit.Dispatcher
	uploader storage.Uploader
	checkout *financeuc.Checkout
	webhook  *financeuc.Webhook
}

func NewFinanceHandler(
	s store.Store,
	audit *audit.Dispatcher,
	uploader storage.Uploader,
	checkout *financeuc.Checkout,
	webhook *financeuc.Webhook,
) *FinanceHandler {
	return &FinanceHandler{
		store:    s,
		audit:    audit,
		uploader: uploader,
		checkout: checkout,
		webhook:  webhook,
	}
}

type CreateFinanceRequest struct {
	Type          models.FinanceType   `json:"type" binding:"required,finance_type"`
	Amount        float64              `json:"amount" binding:"required,gt=0"`
	Description   string               `json:"description" binding:"required"`
	ParentID      *uuid.UUID           `json:"parentId"`
	BabysitterID  *uuid.UUID           `json:"babysitterId"`
	ChildID       *uuid.UUID           `json:"childId"`
	Date          models.Date          `json:"date"`
	Status        models.FinanceStatus `json:"status" binding:"omitempty,finance_status"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required,payment_method"`
	TransactionID string               `json:"transactionId"`
	Notes         string               `json:"notes"`
}

type UpdateFinanceRequest struct {
	Type          *models.FinanceType   `json:"type" binding:"omitempty,finance_type"`
	Amount        *float64              `json:"amount" binding:"omitempty,min=0"`
	Description   *string               `json:"description"`
	BabysitterID  *uuid.UUID            `json:"babysitterId"`
	ChildID       *uuid.UUID            `json:"childId"`
	Date          *models.Date          `json:"date"`
	Status        *models.FinanceStatus `json:"status" binding:"omitempty,finance_status"`
	PaymentMethod *models.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method"`
	TransactionID *string               `json:"transactionId"`
	Notes         *string               `json:"notes"`
}

// WebhookNotification is the body Mercado Pago posts; the id may also come
// as the data.id query parameter.
type WebhookNotification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

const (
	financeNotFoundCode = "finance_not_found"
	financeNotFoundMsg  = "Financial record not found"
)

// canSeeFinance lets the record's babysitter read it; only the parent or an
// admin may change it.
func canSeeFinance(me access.Principal, rec *models.Finance) bool {
	return canEditFinance(me, rec) || (rec.BabysitterID != nil && me.OwnsRef(rec.BabysitterID))
}

func canEditFinance(me access.Principal, rec *models.Finance) bool {
	return me.Owns(rec.ParentID)
}

func (h *FinanceHandler) load(
	c *gin.Context,
	allowed func(access.Principal, *models.Finance) bool,
	denied string,
) (*models.Finance, bool) {
	id, ok := pathID(c, financeNotFoundCode, financeNotFoundMsg)
	if !ok {
		return nil, false
	}
	rec, err := h.store.Finance().Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, financeNotFoundCode, financeNotFoundMsg))
		return nil, false
	}
	if !allowed(middleware.CurrentPrincipal(c), rec) {
		httperr.Forbidden(c, denied)
		return nil, false
	}
	return rec, true
}

// checkRefs verifies the optional babysitter and child references.
func (h *FinanceHandler) checkRefs(c *gin.Context, babysitterID, childID *uuid.UUID) error {
	ctx := c.Request.Context()
	if babysitterID != nil && *babysitterID != uuid.Nil {
		if _, err := h.store.Users().Get(ctx, *babysitterID); err != nil {
			return notFoundOr(err, babysitterNotFoundCode, babysitterNotFoundMsg)
		}
	}
	if childID != nil && *childID != uuid.Nil {
		if _, err := h.store.Children().Get(ctx, *childID); err != nil {
			return notFoundOr(err, childNotFoundCode, childNotFoundMsg)
		}
	}
	return nil
}

// ======================================================
// CRUD
// ======================================================

func (h *FinanceHandler) List(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	records, err := h.store.Finance().List(c.Request.Context(), me.FinanceScope())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, records)
}

func (h *FinanceHandler) Create(c *gin.Context) {
	var req CreateFinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	parentID := me.ID
	if req.ParentID != nil && *req.ParentID != uuid.Nil && *req.ParentID != me.ID {
		if !me.IsAdmin() {
			httperr.Forbidden(c, "Not authorized to create records for another parent")
			return
		}
		parentID = *req.ParentID
	}
	if _, err := h.store.Users().Get(ctx, parentID); err != nil {
		httperr.Respond(c, notFoundOr(err, "parent_not_found", "Parent not found"))
		return
	}

	babysitterID := req.BabysitterID
	if babysitterID == nil && me.IsBabysitter() {
		babysitterID = &me.ID
	}
	if err := h.checkRefs(c, babysitterID, req.ChildID); err != nil {
		httperr.Respond(c, err)
		return
	}

	date := req.Date
	if date.IsZero() {
		date = today()
	}
	status := req.Status
	if status == "" {
		status = models.FinancePending
	}

	rec := models.Finance{
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		ParentID:      parentID,
		BabysitterID:  babysitterID,
		ChildID:       req.ChildID,
		Date:          date,
		Status:        status,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	if err := h.store.Finance().Create(ctx, &rec); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(me.ID, "finance_created", "finance", rec.ID, gin.H{"type": rec.Type, "amount": rec.Amount})
	c.JSON(http.StatusCreated, rec)
}

func (h *FinanceHandler) Get(c *gin.Context) {
	rec, ok := h.load(c, canSeeFinance, "Not authorized to view this record")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *FinanceHandler) Update(c *gin.Context) {
	rec, ok := h.load(c, canEditFinance, "Not authorized to update this record")
	if !ok {
		return
	}

	var req UpdateFinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	if err := h.checkRefs(c, req.BabysitterID, req.ChildID); err != nil {
		httperr.Respond(c, err)
		return
	}

	changed := patch.Changed(
		patch.Required(&rec.Type, req.Type),
		patch.Required(&rec.Amount, req.Amount),
		patch.Required(&rec.Description, req.Description),
		patch.Required(&rec.Date, req.Date),
		patch.Required(&rec.Status, req.Status),
		patch.Required(&rec.PaymentMethod, req.PaymentMethod),
		patch.Optional(&rec.TransactionID, req.TransactionID),
		patch.Optional(&rec.Notes, req.Notes),
	)
	if req.BabysitterID != nil && *req.BabysitterID != uuid.Nil {
		rec.BabysitterID = req.BabysitterID
		rec.Babysitter = nil
		changed = true
	}
	if req.ChildID != nil && *req.ChildID != uuid.Nil {
		rec.ChildID = req.ChildID
		rec.Child = nil
		changed = true
	}

	if changed {
		if err := h.store.Finance().Update(c.Request.Context(), rec); err != nil {
			httperr.Respond(c, err)
			return
		}
		me := middleware.CurrentPrincipal(c)
		h.audit.Record(me.ID, "finance_updated", "finance", rec.ID, nil)
	}
	httpresp.Entity(c, http.StatusOK, "Financial record updated successfully", "record", rec)
}

func (h *FinanceHandler) Delete(c *gin.Context) {
	rec, ok := h.load(c, canEditFinance, "Not authorized to delete this record")
	if !ok {
		return
	}

	if err := h.store.Finance().Delete(c.Request.Context(), rec.ID); err != nil {
		httperr.Respond(c, notFoundOr(err, financeNotFoundCode, financeNotFoundMsg))
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "finance_deleted", "finance", rec.ID, nil)
	httpresp.Message(c, "Financial record deleted successfully")
}

// ======================================================
// SUMMARY / REPORTS
// ======================================================

func (h *FinanceHandler) Summary(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	records, err := h.store.Finance().List(c.Request.Context(), me.FinanceScope())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Summarize(records))
}

func (h *FinanceHandler) Reports(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)
	f := me.FinanceScope()

	from, to, ok := dateRange(c)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "startDate and endDate must be dates")
		return
	}
	f.From, f.To = from, to

	if t := models.FinanceType(c.Query("type")); t != "" {
		if !domain.ValidType(t) {
			httperr.BadRequest(c, "invalid_type", "Unknown finance type "+string(t))
			return
		}
		f.Type = t
	}
	if m := models.PaymentMethod(c.Query("paymentMethod")); m != "" {
		if !domain.ValidMethod(m) {
			httperr.BadRequest(c, "invalid_payment_method", "Unknown payment method "+string(m))
			return
		}
		f.PaymentMethod = m
	}

	records, err := h.store.Finance().List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, records)
}

// ======================================================
// RECEIPT / CHECKOUT
// ======================================================

// UploadReceipt accepts a multipart "receipt" file.
func (h *FinanceHandler) UploadReceipt(c *gin.Context) {
	rec, ok := h.load(c, canEditFinance, "Not authorized to update this record")
	if !ok {
		return
	}

	fh, err := c.FormFile("receipt")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "receipt file is required")
		return
	}
	if fh.Size > maxUploadSize {
		httperr.BadRequest(c, "file_too_large", "receipt must be at most 10MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("receipts/%s/%d%s", rec.ID, clock().UnixNano(), strings.ToLower(filepath.Ext(fh.Filename)))
	url, err := h.uploader.Upload(ctx, key, contentType, data)
	if errors.Is(err, storage.ErrDisabled) {
		httperr.Respond(c, childuc.ErrUploadsDisabled)
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	rec.Receipt = url
	if err := h.store.Finance().Update(ctx, rec); err != nil {
		httperr.Respond(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "receipt_uploaded", "finance", rec.ID, gin.H{"key": key})
	httpresp.Entity(c, http.StatusOK, "Receipt uploaded successfully", "record", rec)
}

func (h *FinanceHandler) Checkout(c *gin.Context) {
	id, ok := pathID(c, financeNotFoundCode, financeNotFoundMsg)
	if !ok {
		return
	}

	rec, err := h.checkout.Execute(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Checkout created successfully",
		"record":      rec,
		"checkoutUrl": rec.CheckoutURL,
	})
}

// MercadoPagoWebhook is public: the gateway is asked for the payment
// status instead of trusting the notification body.
func (h *FinanceHandler) MercadoPagoWebhook(c *gin.Context) {
	var body WebhookNotification
	_ = c.ShouldBindJSON(&body)

	kind := body.Type
	if kind == "" {
		kind = c.Query("type")
	}
	if kind == "" {
		kind = c.Query("topic")
	}
	if kind != "payment" {
		httpresp.Message(c, "Notification ignored")
		return
	}

	raw := body.Data.ID
	if raw == "" {
		raw = c.Query("data.id")
	}
	if raw == "" {
		raw = c.Query("id")
	}
	paymentID, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_payment_id", "Payment id is missing or invalid")
		return
	}

	rec, err := h.webhook.Execute(c.Request.Context(), paymentID)
	if httperr.IsBusiness(err, "invalid_reference") || httperr.IsBusiness(err, financeNotFoundCode) {
		// payments created outside this API; answering 2xx stops redelivery
		log.Warn().Err(err).Int("payment", paymentID).Msg("webhook payment has no matching record")
		httpresp.Message(c, "Notification ignored")
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if rec == nil {
		httpresp.Message(c, "Payment pending")
		return
	}

	httpresp.Entity(c, http.StatusOK, "Payment processed", "record", rec)
}
