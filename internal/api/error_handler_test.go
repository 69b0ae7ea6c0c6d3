package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrTaskNotFound, http.StatusNotFound},
		{domain.ErrSubmissionNotFound, http.StatusNotFound},
		{domain.ErrItemNotFound, http.StatusNotFound},
		{domain.ErrDuplicateSubmission, http.StatusConflict},
		{domain.ErrAlreadyApproved, http.StatusConflict},
		{domain.ErrAlreadyRejected, http.StatusConflict},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrDeclineReasonRequired, http.StatusUnprocessableEntity},
		{domain.ErrInsufficientTokens, http.StatusBadRequest},
		{domain.ErrInvalidSharedToken, http.StatusUnauthorized},
		// Wrapped errors must still resolve.
		{fmt.Errorf("confirm: %w", domain.ErrInsufficientTokens), http.StatusBadRequest},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		handler(c.err, ctx)
		if rec.Code != c.code {
			t.Errorf("%v: expected %d, got %d", c.err, c.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler(errors.New("mongo exploded"), ctx)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal detail leaked to client: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler(echo.NewHTTPError(http.StatusUnprocessableEntity, "title is required"), ctx)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "title is required") {
		t.Fatalf("validation message missing: %s", rec.Body.String())
	}
}
