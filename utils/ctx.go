package utils

import (
	"context"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/gateway"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey   = "session"
	requestIDKey = "requestId"
)

func SetSession(c *gin.Context, s *entity.Session) { c.Set(sessionKey, s) }

func CurrentSession(c *gin.Context) *entity.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*entity.Session); ok {
			return s
		}
	}
	return nil
}

func CurrentSessionID(c *gin.Context) string {
	if s := CurrentSession(c); s != nil {
		return s.ID
	}
	return ""
}

func SetRequestID(c *gin.Context, id string) { c.Set(requestIDKey, id) }

func RequestID(c *gin.Context) string { return c.GetString(requestIDKey) }

// GatewayContext is the request context carrying the session's gateway token
// and the request id.
func GatewayContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if s := CurrentSession(c); s != nil {
		ctx = gateway.WithToken(ctx, s.GatewayToken)
	}
	if id := RequestID(c); id != "" {
		ctx = gateway.WithRequestID(ctx, id)
	}
	return ctx
}
