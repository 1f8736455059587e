package email

import (
	"context"
	"strings"
	"testing"
)

func TestSend_IncompleteConfig(t *testing.T) {
	m := NewMailer(Config{Host: "smtp.example.com"})
	if err := m.Send(context.Background(), "a@x.com", "Hi", "body"); err == nil {
		t.Fatalf("expected error for incomplete configuration")
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("Reviews <noreply@example.com>", "a@x.com", "Your OTP Code", "Your OTP is 123456.")

	lines := strings.Split(msg, "\r\n")
	if lines[0] != "From: Reviews <noreply@example.com>" {
		t.Fatalf("unexpected From header: %q", lines[0])
	}
	if lines[1] != "To: a@x.com" {
		t.Fatalf("unexpected To header: %q", lines[1])
	}
	if lines[2] != "Subject: Your OTP Code" {
		t.Fatalf("unexpected Subject header: %q", lines[2])
	}
	if lines[len(lines)-1] != "Your OTP is 123456." {
		t.Fatalf("body must follow the blank separator line, got %q", lines[len(lines)-1])
	}
	if !strings.Contains(msg, "\r\n\r\n") {
		t.Fatalf("headers and body must be separated by a blank line")
	}
}

func TestBareAddress(t *testing.T) {
	if got := bareAddress("Reviews <noreply@example.com>"); got != "noreply@example.com" {
		t.Fatalf("expected bare address, got %q", got)
	}
	if got := bareAddress("noreply@example.com"); got != "noreply@example.com" {
		t.Fatalf("plain address must pass through, got %q", got)
	}
	if got := bareAddress("  noreply@example.com  "); got != "noreply@example.com" {
		t.Fatalf("whitespace must be trimmed, got %q", got)
	}
}
