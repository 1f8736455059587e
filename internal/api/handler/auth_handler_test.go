package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aireviews/review-system/internal/core/domain"
)

type stubAuthService struct {
	requestOTP      func(ctx context.Context, email string) error
	verifyOTP       func(ctx context.Context, email, code string) (string, error)
	requestAdminOTP func(ctx context.Context, email string) error
	verifyAdminOTP  func(ctx context.Context, email, code string) (string, error)
}

func (s *stubAuthService) RequestOTP(ctx context.Context, email string) error {
	return s.requestOTP(ctx, email)
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	return s.verifyOTP(ctx, email, code)
}

func (s *stubAuthService) RequestAdminOTP(ctx context.Context, email string) error {
	return s.requestAdminOTP(ctx, email)
}

func (s *stubAuthService) VerifyAdminOTP(ctx context.Context, email, code string) (string, error) {
	return s.verifyAdminOTP(ctx, email, code)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SendOTP(t *testing.T) {
	var gotEmail string
	h := NewAuthHandler(&stubAuthService{
		requestOTP: func(_ context.Context, email string) error {
			gotEmail = email
			return nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/auth/send-otp", `{"email":"a@x.com"}`)
	if err := h.SendOTP(c); err != nil {
		t.Fatalf("SendOTP returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotEmail != "a@x.com" {
		t.Fatalf("service received %q", gotEmail)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %v", resp)
	}
}

func TestAuthHandler_SendOTPInvalidEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		requestOTP: func(context.Context, string) error {
			t.Fatal("service must not be called on validation failure")
			return nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/send-otp", `{"email":"not-an-email"}`)
	err := h.SendOTP(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_SendOTPServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		requestOTP: func(context.Context, string) error {
			return domain.ErrTooManyRequests
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/send-otp", `{"email":"a@x.com"}`)
	if err := h.SendOTP(c); err != domain.ErrTooManyRequests {
		t.Fatalf("domain errors must propagate to the error handler, got %v", err)
	}
}

func TestAuthHandler_VerifyOTP(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		verifyOTP: func(_ context.Context, email, code string) (string, error) {
			if email != "a@x.com" || code != "123456" {
				t.Fatalf("unexpected args: %q %q", email, code)
			}
			return "signed-token", nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/auth/verify-otp", `{"email":"a@x.com","otp":"123456"}`)
	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("expected token in response, got %v", resp)
	}
}

func TestAuthHandler_VerifyOTPBadLength(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		verifyOTP: func(context.Context, string, string) (string, error) {
			t.Fatal("service must not be called on validation failure")
			return "", nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/verify-otp", `{"email":"a@x.com","otp":"123"}`)
	err := h.VerifyOTP(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a short code, got %v", err)
	}
}

func TestAuthHandler_VerifyOTPWrongCode(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		verifyOTP: func(context.Context, string, string) (string, error) {
			return "", domain.ErrOTPInvalid
		},
	})

	c, _ := newTestContext(http.MethodPost, "/auth/verify-otp", `{"email":"a@x.com","otp":"654321"}`)
	if err := h.VerifyOTP(c); err != domain.ErrOTPInvalid {
		t.Fatalf("expected ErrOTPInvalid to propagate, got %v", err)
	}
}

func TestAuthHandler_SendAdminOTPNotAllowListed(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		requestAdminOTP: func(context.Context, string) error {
			return domain.ErrNotAllowListed
		},
	})

	c, _ := newTestContext(http.MethodPost, "/admin/send-otp", `{"email":"intruder@x.com"}`)
	if err := h.SendAdminOTP(c); err != domain.ErrNotAllowListed {
		t.Fatalf("expected ErrNotAllowListed to propagate, got %v", err)
	}
}

func TestAuthHandler_VerifyAdminOTP(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		verifyAdminOTP: func(context.Context, string, string) (string, error) {
			return "admin-token", nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/admin/verify-otp", `{"email":"root@example.com","otp":"123456"}`)
	if err := h.VerifyAdminOTP(c); err != nil {
		t.Fatalf("VerifyAdminOTP returned error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "admin-token") {
		t.Fatalf("expected token in response, got %s", rec.Body.String())
	}
}
