package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

const maxUploadSize = 10 << 20

// pathID parses :id. A malformed id cannot name an existing document, so it
// renders the resource's not-found error.
func pathID(c *gin.Context, code, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, code, message)
		return uuid.Nil, false
	}
	return id, true
}

func uuidQuery(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func boolQuery(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// notFoundOr turns store.ErrNotFound into the resource's 404.
func notFoundOr(err error, code, message string) error {
	if store.IsNotFound(err) {
		return httperr.ErrNotFound(code, message)
	}
	return err
}
