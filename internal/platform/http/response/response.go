// Package response writes the JSON envelopes returned by every handler and maps
// application errors onto HTTP status codes.
package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"admin_backend/internal/platform/store"
	"admin_backend/internal/shared/apperr"
	"admin_backend/internal/shared/messages"
)

// Envelope is the body shape shared by success and error responses.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Meta    *Meta             `json:"meta,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Meta describes the page carried by a paginated envelope.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// Data writes data and message with the given status.
func Data(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Success writes a 200 with only a message.
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// SuccessCreated writes a 201 with only a message.
func SuccessCreated(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message})
}

// Paginated writes the items of page converted with fn plus pagination metadata.
func Paginated[E, T any](c *gin.Context, message string, page store.Page[E], fn func(E) T) {
	out := store.MapPage(page, fn)
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    out.Items,
		Meta: &Meta{
			CurrentPage: out.Page,
			PerPage:     out.Limit,
			Total:       out.Total,
			LastPage:    out.LastPage,
		},
	})
}

// Status maps an application error to its HTTP status code.
func Status(err error) int {
	switch apperr.KindOf(err) {
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrPersistence:
		return http.StatusBadGateway
	case apperr.ErrLogin:
		return http.StatusUnauthorized
	case apperr.ErrValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the envelope for err and logs it. Causes of persistence and
// unknown errors are logged but never sent to the client.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	status := Status(err)
	msg := apperr.MessageOf(err)
	if status == http.StatusInternalServerError {
		msg = messages.InternalError
	}

	fields := []zap.Field{
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Warn("request failed", fields...)
	}

	if field := apperr.FieldOf(err); field != "" {
		c.AbortWithStatusJSON(status, Envelope{
			Success: false,
			Message: messages.Unprocessable,
			Errors:  map[string]string{field: msg},
		})
		return
	}
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg})
}

// Message writes an error envelope with an explicit status and message.
func Message(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// ValidationFailed writes a 422 describing binding errors per field.
func ValidationFailed(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: messages.Unprocessable,
		Errors:  FieldErrors(err),
	})
}

// FieldErrors converts validator errors to a field -> message map. Errors
// that are not validation errors (malformed JSON) are reported under "body".
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[toSnake(fe.Field())] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	field := strings.ToUpper(toSnake(fe.Field()))
	switch fe.Tag() {
	case "required":
		return field + " IS REQUIRED"
	case "email":
		return "EMAIL FORMAT IS INVALID"
	case "min":
		return field + " MUST BE AT LEAST " + fe.Param()
	case "max":
		return field + " MUST BE AT MOST " + fe.Param()
	case "eqfield":
		return field + " IS NOT CONFIRMED"
	default:
		return field + " IS INVALID"
	}
}

// toSnake converts a Go field name such as ParentID to parent_id.
func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
