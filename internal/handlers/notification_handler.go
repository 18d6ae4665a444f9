package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/notification"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/httpresp"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type NotificationHandler struct {
	store  store.Store
	audit  *audit.Dispatcher
	notify *notify.Notifier
}

func NewNotificationHandler(s store.Store, audit *audit.Dispatcher, n *notify.Notifier) *NotificationHandler {
	return &NotificationHandler{store: s, audit: audit, notify: n}
}

type CreateNotificationRequest struct {
	RecipientID    uuid.UUID               `json:"recipientId" binding:"required"`
	Type           models.NotificationType `json:"type" binding:"required,notification_type"`
	Title          string                  `json:"title" binding:"required,max=200"`
	Message        string                  `json:"message" binding:"required"`
	RelatedTo      models.RelatedTo        `json:"relatedTo"`
	Priority       models.Priority         `json:"priority" binding:"omitempty,priority"`
	ActionRequired bool                    `json:"actionRequired"`
	ActionURL      string                  `json:"actionUrl"`
}

type NotificationStatusRequest struct {
	Status models.NotificationStatus `json:"status" binding:"required,notification_status"`
}

type UpdatePreferencesRequest struct {
	EmailEnabled *bool                     `json:"emailEnabled"`
	MutedTypes   []models.NotificationType `json:"mutedTypes" binding:"omitempty,dive,notification_type"`
}

const (
	notificationNotFoundCode = "notification_not_found"
	notificationNotFoundMsg  = "Notification not found"
)

func isSender(me access.Principal, n *models.Notification) bool {
	return n.SenderID != nil && *n.SenderID == me.ID
}

// load fetches the notification in the path. Recipients and admins always
// pass; senders pass only when allowSender is set.
func (h *NotificationHandler) load(c *gin.Context, allowSender bool, denied string) (*models.Notification, bool) {
	id, ok := pathID(c, notificationNotFoundCode, notificationNotFoundMsg)
	if !ok {
		return nil, false
	}

	n, err := h.store.Notifications().Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundOr(err, notificationNotFoundCode, notificationNotFoundMsg))
		return nil, false
	}

	me := middleware.CurrentPrincipal(c)
	if !me.Owns(n.RecipientID) && !(allowSender && isSender(me, n)) {
		httperr.Forbidden(c, denied)
		return nil, false
	}
	return n, true
}

// ======================================================
// CRUD
// ======================================================

func (h *NotificationHandler) List(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	f := me.NotificationScope()
	if c.Query("box") == "sent" {
		f = store.NotificationFilter{SenderID: &me.ID}
	}

	if s := models.NotificationStatus(c.Query("status")); s != "" {
		if !domain.ValidStatus(s) {
			httperr.BadRequest(c, "invalid_status", "Unknown notification status "+string(s))
			return
		}
		f.Status = s
	}
	if t := models.NotificationType(c.Query("type")); t != "" {
		if !domain.ValidType(t) {
			httperr.BadRequest(c, "invalid_type", "Unknown notification type "+string(t))
			return
		}
		f.Type = t
	}

	list, err := h.store.Notifications().List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.Users().Get(ctx, req.RecipientID); err != nil {
		httperr.Respond(c, notFoundOr(err, "recipient_not_found", "Recipient not found"))
		return
	}

	me := middleware.CurrentPrincipal(c)
	n := models.Notification{
		RecipientID:    req.RecipientID,
		SenderID:       &me.ID,
		Type:           req.Type,
		Title:          req.Title,
		Message:        req.Message,
		RelatedTo:      req.RelatedTo,
		Priority:       req.Priority,
		Status:         models.NotificationUnread,
		ActionRequired: req.ActionRequired,
		ActionURL:      req.ActionURL,
	}
	if err := h.notify.Deliver(ctx, &n); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(me.ID, "notification_created", "notification", n.ID, gin.H{"recipient": n.RecipientID})
	c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) Get(c *gin.Context) {
	n, ok := h.load(c, true, "Not authorized to view this notification")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) Update(c *gin.Context) {
	n, ok := h.load(c, false, "Not authorized to update this notification")
	if !ok {
		return
	}

	var req NotificationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}
	h.setStatus(c, n, req.Status, "Notification updated successfully")
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, ok := h.load(c, false, "Not authorized to update this notification")
	if !ok {
		return
	}
	h.setStatus(c, n, models.NotificationRead, "Notification marked as read")
}

func (h *NotificationHandler) setStatus(c *gin.Context, n *models.Notification, status models.NotificationStatus, message string) {
	if err := domain.SetStatus(n, status, clock()); err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := h.store.Notifications().Update(c.Request.Context(), n); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Entity(c, http.StatusOK, message, "notification", n)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	n, ok := h.load(c, true, "Not authorized to delete this notification")
	if !ok {
		return
	}

	if err := h.store.Notifications().Delete(c.Request.Context(), n.ID); err != nil {
		httperr.Respond(c, notFoundOr(err, notificationNotFoundCode, notificationNotFoundMsg))
		return
	}

	me := middleware.CurrentPrincipal(c)
	h.audit.Record(me.ID, "notification_deleted", "notification", n.ID, nil)
	httpresp.Message(c, "Notification deleted successfully")
}

// ======================================================
// INBOX HELPERS
// ======================================================

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	count, err := h.store.Notifications().Count(c.Request.Context(), store.NotificationFilter{
		RecipientID: &me.ID,
		Status:      models.NotificationUnread,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	updated, err := h.store.Notifications().MarkAllRead(c.Request.Context(), me.ID, clock())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
		"updated": updated,
	})
}

// ======================================================
// PREFERENCES
// ======================================================

func (h *NotificationHandler) preferences(c *gin.Context, userID uuid.UUID) (*models.NotificationPreference, error) {
	pref, err := h.store.Preferences().Get(c.Request.Context(), userID)
	if store.IsNotFound(err) {
		return &models.NotificationPreference{
			UserID:       userID,
			EmailEnabled: true,
			MutedTypes:   []models.NotificationType{},
		}, nil
	}
	return pref, err
}

func (h *NotificationHandler) GetPreferences(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)

	pref, err := h.preferences(c, me.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *NotificationHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, err)
		return
	}

	me := middleware.CurrentPrincipal(c)
	pref, err := h.preferences(c, me.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.EmailEnabled != nil {
		pref.EmailEnabled = *req.EmailEnabled
	}
	if req.MutedTypes != nil {
		pref.MutedTypes = req.MutedTypes
	}

	if err := h.store.Preferences().Upsert(c.Request.Context(), pref); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Entity(c, http.StatusOK, "Preferences updated successfully", "preferences", pref)
}
