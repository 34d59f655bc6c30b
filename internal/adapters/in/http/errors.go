package http

import (
	"errors"
	"net/http"

	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// classify maps an error returned by a handler to a status code and a kind
// label. echo errors keep their own code; unknown errors are internal.
func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, ""
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden, "permission_denied"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusUnprocessableEntity, "precondition_failed"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrConcurrentOperation):
		return http.StatusConflict, "conflict"
	case errs.IsValidation(err):
		return http.StatusBadRequest, "validation"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// NewErrorHandler replaces echo's default error handler. Domain errors keep
// their message; internal errors are logged and answered generically.
func NewErrorHandler(logger *zap.Logger, m *metrics.Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind := classify(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && kind == "" {
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		}

		if kind != "" && m != nil {
			m.DomainErrors.WithLabelValues(kind).Inc()
		}
		if code >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("request_id", RequestIDFrom(c)),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			message = http.StatusText(code)
		}

		resp := ErrorResponse{Code: code, Kind: kind, Message: message}
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, resp)
		}
		if writeErr != nil {
			logger.Warn("Failed to write error response", zap.Error(writeErr))
		}
	}
}
