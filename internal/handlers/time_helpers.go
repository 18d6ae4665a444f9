package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/timezone"
)

// clock is swapped in tests.
var clock = timezone.Now

func today() models.Date {
	return models.DateOf(clock())
}

// dateQuery parses an optional YYYY-MM-DD (or RFC3339) query parameter.
func dateQuery(c *gin.Context, key string) (*models.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// dateRange reads startDate/endDate query parameters.
func dateRange(c *gin.Context) (from, to *models.Date, ok bool) {
	if from, ok = dateQuery(c, "startDate"); !ok {
		return nil, nil, false
	}
	if to, ok = dateQuery(c, "endDate"); !ok {
		return nil, nil, false
	}
	return from, to, true
}
