package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "task not found"
	case errors.Is(err, domain.ErrSubmissionNotFound):
		return http.StatusNotFound, "submission not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "shop item not found"
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, "task already submitted"
	case errors.Is(err, domain.ErrAlreadyApproved):
		return http.StatusConflict, "submission already approved"
	case errors.Is(err, domain.ErrAlreadyRejected):
		return http.StatusConflict, "submission already rejected"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrDeclineReasonRequired):
		return http.StatusUnprocessableEntity, "decline reason is required"
	case errors.Is(err, domain.ErrInsufficientTokens):
		return http.StatusBadRequest, "insufficient tokens"
	case errors.Is(err, domain.ErrInvalidSharedToken):
		return http.StatusUnauthorized, "invalid or expired shared token"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
