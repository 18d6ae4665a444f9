package middleware

import (
	"fmt"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
)

func rateKey(c *gin.Context) string {
	return c.ClientIP()
}

func rateExceeded(c *gin.Context, info ratelimit.Info) {
	retry := int(time.Until(info.ResetTime).Seconds())
	if retry < 0 {
		retry = 0
	}
	httperr.Write(c, http.StatusTooManyRequests, "too_many_requests",
		fmt.Sprintf("Too many requests. Try again in %d seconds.", retry))
	c.Abort()
}

// RateLimiter allows limit requests per client IP every rate window.
func RateLimiter(rate time.Duration, limit uint) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  rate,
		Limit: limit,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: rateExceeded,
		KeyFunc:      rateKey,
	})
}
