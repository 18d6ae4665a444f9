package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/daycare-manager/internal/cache"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

const statsCacheKey = "dashboard:stats"

type DashboardStats struct {
	TotalChildren     int64   `json:"totalChildren"`
	ActiveBabysitters int64   `json:"activeBabysitters"`
	PendingRequests   int64   `json:"pendingRequests"`
	TotalEarnings     float64 `json:"totalEarnings"`
}

type DashboardHandler struct {
	store store.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewDashboardHandler caches stats for ttl; a zero ttl or nil cache disables it.
func NewDashboardHandler(s store.Store, c cache.Cache, ttl time.Duration) *DashboardHandler {
	if c == nil {
		c = cache.Nop{}
	}
	return &DashboardHandler{store: s, cache: c, ttl: ttl}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	var stats DashboardStats
	if h.ttl > 0 {
		hit, err := h.cache.GetJSON(ctx, statsCacheKey, &stats)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard cache read failed")
		}
		if hit {
			c.JSON(http.StatusOK, stats)
			return
		}
	}

	stats, err := h.compute(ctx)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if h.ttl > 0 {
		if err := h.cache.SetJSON(ctx, statsCacheKey, stats, h.ttl); err != nil {
			log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) compute(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	available := true

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalChildren, err = h.store.Children().Count(ctx, store.ChildFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveBabysitters, err = h.store.Babysitters().Count(ctx, store.BabysitterFilter{Available: &available})
		return err
	})
	g.Go(func() (err error) {
		stats.PendingRequests, err = h.store.Schedules().Count(ctx, store.ScheduleFilter{Status: models.SchedulePending})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEarnings, err = h.store.Finance().Sum(ctx, store.FinanceFilter{
			Type:   models.FinancePayment,
			Status: models.FinanceCompleted,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}
