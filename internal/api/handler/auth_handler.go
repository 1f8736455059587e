package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aireviews/review-system/internal/api/metrics"
	"github.com/aireviews/review-system/internal/core/ports"
)

// AuthHandler exposes the OTP request/verify endpoints for both flows.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required,len=6"`
}

type sendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type verifyOTPResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// SendOTP issues a one-time code for the given email.
//
// @Summary      Request a login OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "Email to send the OTP to"
// @Success      200   {object}  sendOTPResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/send-otp [post]
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.RequestOTP(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.OTPRequestsTotal.WithLabelValues("user").Inc()
	return c.JSON(http.StatusOK, sendOTPResponse{Success: true, Message: "OTP sent to email"})
}

// VerifyOTP exchanges a valid code for a session token.
//
// @Summary      Verify an OTP and obtain a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and OTP"
// @Success      200   {object}  verifyOTPResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("user", "fail").Inc()
		return err
	}

	metrics.OTPVerificationsTotal.WithLabelValues("user", "ok").Inc()
	return c.JSON(http.StatusOK, verifyOTPResponse{Success: true, Token: token})
}

// SendAdminOTP issues a one-time code for an allow-listed admin email.
//
// @Summary      Request an admin OTP
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "Admin email"
// @Success      200   {object}  sendOTPResponse
// @Failure      403   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /admin/send-otp [post]
func (h *AuthHandler) SendAdminOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.RequestAdminOTP(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.OTPRequestsTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusOK, sendOTPResponse{Success: true, Message: "OTP sent to email"})
}

// VerifyAdminOTP exchanges a valid admin code for an admin session token.
//
// @Summary      Verify an admin OTP and obtain a session token
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Admin email and OTP"
// @Success      200   {object}  verifyOTPResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /admin/verify-otp [post]
func (h *AuthHandler) VerifyAdminOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.VerifyAdminOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("admin", "fail").Inc()
		return err
	}

	metrics.OTPVerificationsTotal.WithLabelValues("admin", "ok").Inc()
	return c.JSON(http.StatusOK, verifyOTPResponse{Success: true, Token: token})
}
