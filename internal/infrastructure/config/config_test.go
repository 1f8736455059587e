package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func loadFrom(t *testing.T, env map[string]string) *Config {
	t.Helper()
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	}); err != nil {
		t.Fatalf("process config: %v", err)
	}
	return &cfg
}

func TestConfig_Defaults(t *testing.T) {
	cfg := loadFrom(t, nil)

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.OTPTTL != 10*time.Minute {
		t.Errorf("expected default otp ttl 10m, got %v", cfg.OTPTTL)
	}
	if cfg.UserTokenTTL != 168*time.Hour {
		t.Errorf("expected default user token ttl 168h, got %v", cfg.UserTokenTTL)
	}
	if cfg.AdminTokenTTL != time.Hour {
		t.Errorf("expected default admin token ttl 1h, got %v", cfg.AdminTokenTTL)
	}
	if cfg.Mongo.Database != "review_system" {
		t.Errorf("expected default database review_system, got %q", cfg.Mongo.Database)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("expected default smtp port 587, got %d", cfg.SMTP.Port)
	}
	if cfg.AI.Timeout != 10*time.Second {
		t.Errorf("expected default ai timeout 10s, got %v", cfg.AI.Timeout)
	}
}

func TestConfig_Overrides(t *testing.T) {
	cfg := loadFrom(t, map[string]string{
		"PORT":           "9090",
		"OTP_TTL":        "5m",
		"AI_SERVICE_URL": "http://ai:8000",
	})

	if cfg.Port != "9090" {
		t.Errorf("port override ignored, got %q", cfg.Port)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Errorf("otp ttl override ignored, got %v", cfg.OTPTTL)
	}
	if cfg.AI.BaseURL != "http://ai:8000" {
		t.Errorf("ai url override ignored, got %q", cfg.AI.BaseURL)
	}
}

func TestConfig_AdminAllowList(t *testing.T) {
	cfg := &Config{AdminEmails: " Root@Example.com, ops@example.com ,,  "}
	got := cfg.AdminAllowList()
	want := []string{"root@example.com", "ops@example.com"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if entries := (&Config{}).AdminAllowList(); entries != nil {
		t.Fatalf("empty allow-list must be nil, got %v", entries)
	}
}
