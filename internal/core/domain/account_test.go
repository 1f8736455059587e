package domain

import (
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"User@Example.COM":  "user@example.com",
		"  a@x.com  ":       "a@x.com",
		"\tAdmin@X.com\n":   "admin@x.com",
		"already@lower.com": "already@lower.com",
		"   ":               "",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAccount_OTPPending(t *testing.T) {
	var a Account
	if a.OTPPending() {
		t.Fatalf("fresh account must not report a pending otp")
	}

	a.OTPHash = "digest"
	if a.OTPPending() {
		t.Fatalf("hash without expiry is a half-written record, not a pending otp")
	}

	a.OTPExpiry = time.Now().Add(10 * time.Minute)
	if !a.OTPPending() {
		t.Fatalf("hash plus expiry must report pending")
	}

	a.OTPHash = ""
	a.OTPExpiry = time.Time{}
	if a.OTPPending() {
		t.Fatalf("cleared account must not report pending")
	}
}
