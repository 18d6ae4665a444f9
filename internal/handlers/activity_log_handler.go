package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

// ======================================================
// HANDLER
// ======================================================

type ActivityLogHandler struct {
	store store.Store
}

func NewActivityLogHandler(s store.Store) *ActivityLogHandler {
	return &ActivityLogHandler{store: s}
}

func (h *ActivityLogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := store.ActivityLogFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional date window (inclusive days)
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		if from, err := time.Parse(models.DateLayout, raw); err == nil {
			f.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := time.Parse(models.DateLayout, raw); err == nil {
			end := to.Add(24 * time.Hour)
			f.To = &end
		}
	}

	logs, total, err := h.store.ActivityLogs().List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "activity_list_failed", "Could not list activity logs")
		return
	}
	if logs == nil {
		logs = []models.ActivityLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
