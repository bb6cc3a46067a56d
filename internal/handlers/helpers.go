package handlers

import (
	"github.com/gin-gonic/gin"
)

// owner id кладёт auth-middleware; ядро доверяет этому значению
func getUserID(c *gin.Context) string {
	v, ok := c.Get("user_id")
	if !ok {
		return ""
	}
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}
