package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"guidemarket/internal/domain"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
		"details": details,
	})
}

// Result writes a store envelope as-is. Failures get a status derived from the
// classified cause; successes use okStatus.
func Result[T any](c *gin.Context, okStatus int, r domain.Result[T]) {
	if r.Success {
		c.JSON(okStatus, r)
		return
	}
	var verr *domain.ValidationError
	if errors.As(r.Err, &verr) {
		ErrorWithDetails(c, http.StatusBadRequest, r.Error, verr.Fields)
		return
	}
	c.JSON(StatusFor(r.Err), r)
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
