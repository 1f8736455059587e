package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/aireviews/review-system/internal/core/domain"
	"github.com/aireviews/review-system/internal/core/ports"
)

const (
	flowUser  = "user"
	flowAdmin = "admin"
)

// AuthConfig carries the tunables of the OTP and session flows. All values
// come from process configuration; the service never reads the environment.
type AuthConfig struct {
	JWTSecret     string
	AdminEmails   []string
	OTPTTL        time.Duration
	UserTokenTTL  time.Duration
	AdminTokenTTL time.Duration
}

// AuthService implements OTP issuance, verification, and session minting.
type AuthService struct {
	accounts      ports.AccountRepository
	mailer        ports.Mailer
	limiter       ports.OTPLimiter
	adminEmails   map[string]struct{}
	jwtSecret     string
	otpTTL        time.Duration
	userTokenTTL  time.Duration
	adminTokenTTL time.Duration
	log           zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, mailer ports.Mailer, limiter ports.OTPLimiter, cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 10 * time.Minute
	}
	if cfg.UserTokenTTL <= 0 {
		cfg.UserTokenTTL = 168 * time.Hour
	}
	if cfg.AdminTokenTTL <= 0 {
		cfg.AdminTokenTTL = time.Hour
	}

	allowed := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		if n := domain.NormalizeEmail(e); n != "" {
			allowed[n] = struct{}{}
		}
	}

	return &AuthService{
		accounts:      accounts,
		mailer:        mailer,
		limiter:       limiter,
		adminEmails:   allowed,
		jwtSecret:     cfg.JWTSecret,
		otpTTL:        cfg.OTPTTL,
		userTokenTTL:  cfg.UserTokenTTL,
		adminTokenTTL: cfg.AdminTokenTTL,
		log:           log,
	}
}

// RequestOTP issues a fresh one-time code for email and dispatches it by mail.
// A previously pending code is overwritten; only the newest code ever verifies.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.ErrEmailRequired
	}
	return s.issueOTP(ctx, email, domain.RoleUser, flowUser)
}

// RequestAdminOTP is the allow-list-gated variant of RequestOTP. The account
// is created or elevated with the admin role.
func (s *AuthService) RequestAdminOTP(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.ErrEmailRequired
	}
	if !s.isAllowListed(email) {
		return domain.ErrNotAllowListed
	}
	return s.issueOTP(ctx, email, domain.RoleAdmin, flowAdmin)
}

func (s *AuthService) issueOTP(ctx context.Context, email, role, flow string) error {
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// The throttle is a guard, not a gate: fail open on infra errors.
			s.log.Warn().Err(err).Str("email", email).Msg("otp throttle check failed, allowing")
		} else if !ok {
			return domain.ErrTooManyRequests
		}
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expiry := time.Now().UTC().Add(s.otpTTL)

	if _, err := s.accounts.UpsertOTP(ctx, email, role, hashOTP(code), expiry); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	body := fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", code, int(s.otpTTL.Minutes()))
	if err := s.mailer.Send(ctx, email, "Your OTP Code", body); err != nil {
		// The user never saw this code; leaving it pending would strand the
		// account until expiry. Roll the write back and surface the failure.
		if clearErr := s.accounts.ClearOTP(ctx, email, false); clearErr != nil {
			s.log.Error().Err(clearErr).Str("email", email).Msg("failed to roll back otp after mail failure")
		}
		return fmt.Errorf("send otp email: %w", err)
	}

	s.log.Info().Str("email", email).Str("flow", flow).Time("expiry", expiry).Msg("otp issued")
	return nil
}

// VerifyOTP checks a submitted code and, on success, clears the pending OTP,
// marks the account verified, and returns a signed session token.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", domain.ErrEmailRequired
	}
	if code == "" {
		return "", domain.ErrOTPRequired
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			// Do not reveal whether the account exists on the public flow.
			return "", domain.ErrOTPNotRequested
		}
		return "", err
	}

	return s.verify(ctx, account, code, s.userTokenTTL, flowUser)
}

// VerifyAdminOTP is the admin variant: the email must be allow-listed and the
// stored account must carry the admin role.
func (s *AuthService) VerifyAdminOTP(ctx context.Context, email, code string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", domain.ErrEmailRequired
	}
	if code == "" {
		return "", domain.ErrOTPRequired
	}
	if !s.isAllowListed(email) {
		return "", domain.ErrNotAllowListed
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account.Role != domain.RoleAdmin {
		return "", domain.ErrAccountNotFound
	}

	return s.verify(ctx, account, code, s.adminTokenTTL, flowAdmin)
}

func (s *AuthService) verify(ctx context.Context, account *domain.Account, code string, tokenTTL time.Duration, flow string) (string, error) {
	if !account.OTPPending() {
		return "", domain.ErrOTPNotRequested
	}
	if time.Now().UTC().After(account.OTPExpiry) {
		return "", domain.ErrOTPExpired
	}
	if !otpMatches(account.OTPHash, code) {
		return "", domain.ErrOTPInvalid
	}

	if err := s.accounts.ClearOTP(ctx, account.Email, true); err != nil {
		return "", fmt.Errorf("clear otp: %w", err)
	}

	token, err := s.mintToken(account, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	s.log.Info().Str("email", account.Email).Str("role", account.Role).Str("flow", flow).Msg("otp verified, session issued")
	return token, nil
}

// mintToken signs a session token carrying the role held at issuance time.
// Role changes after issuance do not affect outstanding tokens; the short
// expiry bounds that window.
func (s *AuthService) mintToken(account *domain.Account, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": account.ID,
		"email":   account.Email,
		"role":    account.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) isAllowListed(email string) bool {
	_, ok := s.adminEmails[email]
	return ok
}

// generateOTP returns a uniformly random 6-digit decimal code. The range
// 100000–999999 makes a leading zero impossible by construction.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// hashOTP derives the digest persisted in place of the plaintext code.
func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// otpMatches compares digests in constant time.
func otpMatches(storedHash, code string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(hashOTP(code))) == 1
}
