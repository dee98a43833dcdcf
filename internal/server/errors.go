package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/invoiceboard/internal/customer/domain"
	dashboarddomain "github.com/smallbiznis/invoiceboard/internal/dashboard/domain"
	invoicedomain "github.com/smallbiznis/invoiceboard/internal/invoice/domain"
)

type errorPayload struct {
	Type    string              `json:"type"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

// requestError is a malformed query or body that never reached a service.
type requestError struct {
	field   string
	message string
}

func (e *requestError) Error() string {
	return "invalid " + e.field
}

func newRequestError(field, message string) error {
	return &requestError{field: field, message: message}
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var vErr *invoicedomain.ValidationErrors
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: vErr.Message,
			Errors:  vErr.Errors,
		}
	}

	var rErr *requestError
	if errors.As(err, &rErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  map[string][]string{rErr.field: {rErr.message}},
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidID):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
		}
	case errors.Is(err, ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog reports the error type and the sentinel code for request logs.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	switch {
	case errors.Is(err, invoicedomain.ErrPersistence):
		return payload.Type, invoicedomain.ErrPersistence.Error()
	case errors.Is(err, invoicedomain.ErrQuery):
		return payload.Type, invoicedomain.ErrQuery.Error()
	case errors.Is(err, customerdomain.ErrQuery):
		return payload.Type, customerdomain.ErrQuery.Error()
	case errors.Is(err, dashboarddomain.ErrQuery):
		return payload.Type, dashboarddomain.ErrQuery.Error()
	}
	return payload.Type, ""
}
