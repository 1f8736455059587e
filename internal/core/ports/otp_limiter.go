package ports

import "context"

// OTPLimiter throttles OTP issuance per destination address.
type OTPLimiter interface {
	// Allow reports whether another OTP may be sent to email within the
	// current window. Errors are infrastructure failures, not denials.
	Allow(ctx context.Context, email string) (bool, error)
}
