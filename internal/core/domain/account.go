package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrEmailRequired = errors.New("email is required")
var ErrOTPRequired = errors.New("otp is required")
var ErrOTPNotRequested = errors.New("otp not requested")
var ErrOTPExpired = errors.New("otp expired")
var ErrOTPInvalid = errors.New("invalid otp")
var ErrAccountNotFound = errors.New("account not found")
var ErrNotAllowListed = errors.New("not authorized as admin")
var ErrTooManyRequests = errors.New("too many otp requests")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("authentication required")

// Account models a principal identified by email. There are no passwords:
// possession of the mailbox, proven via OTP, is the only credential.
type Account struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	OTPHash    string    `json:"-"`
	OTPExpiry  time.Time `json:"-"`
	IsVerified bool      `json:"is_verified"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OTPPending reports whether the account currently holds an unconsumed OTP.
// Hash and expiry are set and cleared together; checking both guards against
// a half-written record.
func (a *Account) OTPPending() bool {
	return a.OTPHash != "" && !a.OTPExpiry.IsZero()
}

// NormalizeEmail canonicalizes an email for use as an identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
