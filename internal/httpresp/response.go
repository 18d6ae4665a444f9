package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// List always renders a JSON array, never null.
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, data)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Entity renders {message, <key>: data} with the given status.
func Entity(c *gin.Context, status int, message, key string, data any) {
	c.JSON(status, gin.H{
		"message": message,
		key:       data,
	})
}
