package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aireviews/review-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success":false,"error":"<message>"}.
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
	case errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrOTPRequired),
		errors.Is(err, domain.ErrOTPNotRequested),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrOTPInvalid),
		errors.Is(err, domain.ErrTextRequired),
		errors.Is(err, domain.ErrTextTooLong),
		errors.Is(err, domain.ErrRatingRange),
		errors.Is(err, domain.ErrSpamFlagRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrNotAllowListed), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrReviewNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrTooManyRequests):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrAnalyzerUnavailable):
		return http.StatusBadGateway, "analysis service unavailable, please try again later"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
