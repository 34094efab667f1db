package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response.
// AppError carries its own status code; a bare ledger conflict maps to 409.
// Everything else defaults to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	var conflict *ledger.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: conflict.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BadRequest is a shorthand for malformed input.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
