package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sentinel errors for the domain failure modes. Callers wrap these with
// fmt.Errorf("...: %w", Err...) to attach detail.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrProtectedReference = errors.New("protected reference")
)

// Validation wraps err so that it maps to a 400 response.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{kind: ErrValidation, err: err}
}

// NotFound wraps err so that it maps to a 404 response.
func NotFound(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{kind: ErrNotFound, err: err}
}

// Protected wraps err so that it maps to a 409 response.
func Protected(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{kind: ErrProtectedReference, err: err}
}

type wrapped struct {
	kind error
	err  error
}

func (w *wrapped) Error() string { return w.err.Error() }

func (w *wrapped) Unwrap() error { return w.err }

func (w *wrapped) Is(target error) bool { return target == w.kind }

// Respond translates err to the HTTP error envelope: validation failures
// become 400 {error, details}, unknown ids 404, blocked deletes 409, and
// anything else 500 {error, detail}.
func Respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation Error",
			"details": err.Error(),
		})
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"details": err.Error(),
		})
	case errors.Is(err, ErrProtectedReference):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Protected Reference",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "An unexpected error occurred",
			"detail": err.Error(),
		})
	}
}
