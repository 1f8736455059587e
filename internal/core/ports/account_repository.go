package ports

import (
	"context"
	"time"

	"github.com/aireviews/review-system/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
// Emails passed in are expected to be normalized by the caller.
type AccountRepository interface {
	// FindByEmail returns the account keyed by email, or domain.ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// UpsertOTP stores a fresh OTP digest and expiry against the account,
	// creating the record when absent. The verified flag is reset; role is
	// only written on insert, or elevated when role is admin.
	UpsertOTP(ctx context.Context, email, role, otpHash string, otpExpiry time.Time) (*domain.Account, error)
	// ClearOTP removes any pending OTP state and sets the verified flag.
	ClearOTP(ctx context.Context, email string, verified bool) error
}
