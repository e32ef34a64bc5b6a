// middlewares/ws_auth.go
package middlewares

import (
	"strings"

	"github.com/ADat1304/Project-cafe/pkg/resp"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware อ่าน token จาก query ก่อน (browser ใส่ header ให้ websocket ไม่ได้) แล้วค่อย header
func WSAuthMiddleware(auth SessionAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			resp.Unauthorized(c, "missing token")
			c.Abort()
			return
		}
		authorize(c, auth, tokenStr, nil)
	}
}
