package ports

import "context"

// AuthService covers the OTP request/verify flows for both regular users and
// allow-listed admins. Verify methods return a signed session token on success.
type AuthService interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	RequestAdminOTP(ctx context.Context, email string) error
	VerifyAdminOTP(ctx context.Context, email, code string) (string, error)
}
