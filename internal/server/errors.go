package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Message }

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError maps domain errors onto HTTP status codes and writes the
// error envelope.
func AbortWithError(c *gin.Context, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		abort(c, ae)
		return
	}

	var verr *invoicedomain.ValidationError
	if errors.As(err, &verr) {
		abort(c, &apiError{Status: http.StatusBadRequest, Code: "validation_error", Message: verr.Error(), Field: verr.Field})
		return
	}

	var terr *invoicedomain.TransitionError
	if errors.As(err, &terr) {
		abort(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_status_transition", Message: terr.Error()})
		return
	}

	switch {
	case errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrLineItemNotFound):
		abort(c, &apiError{Status: http.StatusNotFound, Code: "not_found", Message: err.Error()})

	case errors.Is(err, invoicedomain.ErrNotDraft):
		abort(c, &apiError{Status: http.StatusConflict, Code: "invoice_not_draft", Message: "invoice can only be modified in draft status"})

	case errors.Is(err, customerdomain.ErrDuplicateID):
		abort(c, &apiError{Status: http.StatusConflict, Code: "duplicate_customer_id", Message: err.Error()})

	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrMissingCustomerEmail),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidRule):
		abort(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: err.Error()})

	default:
		abort(c, &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal server error"})
	}
}

func abort(c *gin.Context, ae *apiError) {
	c.AbortWithStatusJSON(ae.Status, gin.H{"error": ae})
}
