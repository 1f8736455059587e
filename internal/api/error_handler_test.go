package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aireviews/review-system/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrEmailRequired, http.StatusBadRequest},
		{domain.ErrOTPNotRequested, http.StatusBadRequest},
		{domain.ErrOTPExpired, http.StatusBadRequest},
		{domain.ErrOTPInvalid, http.StatusBadRequest},
		{domain.ErrTextTooLong, http.StatusBadRequest},
		{domain.ErrRatingRange, http.StatusBadRequest},
		{domain.ErrSpamFlagRequired, http.StatusBadRequest},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrNotAllowListed, http.StatusForbidden},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrReviewNotFound, http.StatusNotFound},
		{domain.ErrTooManyRequests, http.StatusTooManyRequests},
		{domain.ErrAnalyzerUnavailable, http.StatusBadGateway},
	}

	for _, tc := range cases {
		rec, body := renderError(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body.Success {
			t.Errorf("%v: error envelope must carry success=false", tc.err)
		}
		if body.Error == "" {
			t.Errorf("%v: error envelope must carry a message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("%w: connect timeout", domain.ErrAnalyzerUnavailable)
	rec, body := renderError(t, wrapped)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for wrapped analyzer error, got %d", rec.Code)
	}
	// The transport detail stays server-side.
	if body.Error != "analysis service unavailable, please try again later" {
		t.Fatalf("unexpected client message: %q", body.Error)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Error != "invalid payload" {
		t.Fatalf("unexpected message: %q", body.Error)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("internal details must not leak, got %q", body.Error)
	}
}
