package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
)

// Recovery turns a panic into a 500 {message, error} body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Msg("panic recovered")

		httperr.Internal(c, "internal_error", fmt.Sprint(recovered))
		c.Abort()
	})
}

// ErrorHandler renders the last error attached with c.Error when the
// handler itself wrote nothing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		httperr.Respond(c, c.Errors.Last().Err)
	}
}

// NotFound answers unknown routes in the API's error shape.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		httperr.Write(c, http.StatusNotFound, "route_not_found", "Route not found")
	}
}
