package middlewares

import (
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or mints one, and echoes it back.
// Gateway calls made for the request forward the same id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		utils.SetRequestID(c, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
