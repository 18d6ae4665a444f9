package httperr

import (
	"errors"
	"net/http"
)

// BusinessError is a failure the client can act on. Status is the HTTP
// status it maps to; 400 when left zero.
type BusinessError struct {
	Status  int
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func New(status int, code, message string) error {
	return BusinessError{Status: status, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return New(http.StatusNotFound, code, message)
}

func ErrForbidden(message string) error {
	return New(http.StatusForbidden, "forbidden", message)
}

func ErrInvalid(code, message string) error {
	return New(http.StatusBadRequest, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// StatusOf reports the HTTP status an error would be rendered with.
func StatusOf(err error) int {
	var be BusinessError
	if !errors.As(err, &be) {
		return http.StatusInternalServerError
	}
	if be.Status == 0 {
		return http.StatusBadRequest
	}
	return be.Status
}
