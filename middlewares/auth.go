package middlewares

import (
	"context"
	"strings"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/pkg/resp"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthorizer resolves a BFF token to a live session.
type SessionAuthorizer interface {
	Authorize(ctx context.Context, token string) (*entity.Session, error)
}

// ใช้ตรวจ token และ (ถ้ามี) บังคับ role
func AuthMiddleware(auth SessionAuthorizer, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}
		authorize(c, auth, strings.TrimPrefix(h, "Bearer "), requiredRoles)
	}
}

func authorize(c *gin.Context, auth SessionAuthorizer, token string, requiredRoles []string) {
	sess, err := auth.Authorize(c.Request.Context(), token)
	if err != nil {
		resp.Unauthorized(c, "session expired or invalid, please log in again")
		c.Abort()
		return
	}
	if len(requiredRoles) > 0 && !utils.HasAnyRole(sess.RoleList(), requiredRoles...) {
		resp.Forbidden(c, "forbidden")
		c.Abort()
		return
	}
	utils.SetSession(c, sess)
	c.Next()
}
