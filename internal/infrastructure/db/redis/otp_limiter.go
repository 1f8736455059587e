package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPLimiter throttles OTP issuance per email using a fixed window counter.
// Key format: otp_limit:<email>
type OTPLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewOTPLimiter allows at most max OTP sends per email within each window.
func NewOTPLimiter(client *redis.Client, max int, window time.Duration) *OTPLimiter {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &OTPLimiter{client: client, max: int64(max), window: window}
}

// Allow increments the window counter for email and reports whether the
// request is within budget. The first request in a window sets the TTL.
func (l *OTPLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := l.key(email)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("otp limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("otp limit expire: %w", err)
		}
	}

	return n <= l.max, nil
}

func (l *OTPLimiter) key(email string) string {
	return "otp_limit:" + email
}
