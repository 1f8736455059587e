package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// AdminEmails is the comma-separated allow-list of addresses permitted
	// to obtain admin sessions.
	AdminEmails string `env:"ADMIN_EMAILS"`

	OTPTTL          time.Duration `env:"OTP_TTL,            default=10m"`
	OTPMaxPerWindow int           `env:"OTP_MAX_PER_WINDOW, default=5"`
	UserTokenTTL    time.Duration `env:"USER_TOKEN_TTL,     default=168h"`
	AdminTokenTTL   time.Duration `env:"ADMIN_TOKEN_TTL,    default=1h"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	AI    AIConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=review_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM"`
}

type AIConfig struct {
	BaseURL string        `env:"AI_SERVICE_URL, default=http://localhost:8000"`
	Timeout time.Duration `env:"AI_TIMEOUT,     default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// AdminAllowList splits the configured allow-list into normalized entries.
func (c *Config) AdminAllowList() []string {
	if c.AdminEmails == "" {
		return nil
	}
	parts := strings.Split(c.AdminEmails, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if e := strings.ToLower(strings.TrimSpace(p)); e != "" {
			out = append(out, e)
		}
	}
	return out
}
