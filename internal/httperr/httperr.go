package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Message string `json:"message"`
	Code    string `json:"error"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Message: message,
		Code:    code,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, message string) {
	Write(c, http.StatusForbidden, "forbidden", message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// Invalid renders a binding/validation failure.
func Invalid(c *gin.Context, err error) {
	BadRequest(c, "invalid_request", err.Error())
}

// Respond renders err. Business errors keep their status and code; anything
// else is a 500 with the error text passed through.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusOf(be), be.Code, be.Error())
		return
	}

	log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	Internal(c, "internal_error", err.Error())
}
