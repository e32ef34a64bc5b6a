package resp

import (
	"errors"
	"net/http"

	"github.com/ADat1304/Project-cafe/gateway"
	"github.com/ADat1304/Project-cafe/services"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}

// Validation renders a user-correctable error with its code and field so the
// screen can highlight the input.
func Validation(c *gin.Context, ve *services.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, validationBody(ve))
}

func validationBody(ve *services.ValidationError) gin.H {
	return gin.H{"ok": false, "error": ve.Message, "code": ve.Code, "field": ve.Field}
}

// Error picks the status for err. Gateway client errors (4xx) keep their
// status, other gateway failures become 502 and an unreachable gateway 503.
// The message is always services.UserMessage(err).
func Error(c *gin.Context, err error) {
	ErrorWithData(c, err, nil)
}

// ErrorWithData is Error plus a "data" field, used when the caller still has
// state worth showing next to the message.
func ErrorWithData(c *gin.Context, err error, data any) {
	status, body := errorBody(err)
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func errorBody(err error) (int, gin.H) {
	var (
		ve *services.ValidationError
		ge *gateway.Error
		ne *gateway.NetworkError
	)
	msg := services.UserMessage(err)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, validationBody(ve)
	case errors.Is(err, services.ErrSubmissionInFlight):
		return http.StatusConflict, gin.H{"ok": false, "error": msg}
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrSessionExpired):
		return http.StatusUnauthorized, gin.H{"ok": false, "error": msg}
	case errors.As(err, &ge):
		status := http.StatusBadGateway
		if ge.Status >= 400 && ge.Status < 500 {
			status = ge.Status
		}
		return status, gin.H{"ok": false, "error": msg}
	case errors.As(err, &ne):
		return http.StatusServiceUnavailable, gin.H{"ok": false, "error": msg}
	default:
		return http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()}
	}
}
