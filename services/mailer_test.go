package services

import (
	"strings"
	"testing"
)

func TestRenderCodeEmailContainsCode(t *testing.T) {
	html, err := renderCodeEmail("Email Verification", "Ada", "Use the code below:", "123456", "Ignore if not you.")
	if err != nil {
		t.Fatalf("renderCodeEmail failed: %v", err)
	}
	for _, want := range []string{"123456", "Hello Ada", "Email Verification", "expire in 10 minutes"} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered email missing %q", want)
		}
	}
}

func TestRenderCodeEmailEscapesHTML(t *testing.T) {
	html, err := renderCodeEmail("Heading", "<script>alert(1)</script>", "intro", "123456", "outro")
	if err != nil {
		t.Fatalf("renderCodeEmail failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("user-controlled name not escaped")
	}
}

func TestRenderSimpleEmail(t *testing.T) {
	html, err := renderSimpleEmail("Welcome to Konze!", "Ada", "Glad to have you.")
	if err != nil {
		t.Fatalf("renderSimpleEmail failed: %v", err)
	}
	for _, want := range []string{"Welcome to Konze!", "Hello Ada", "Glad to have you."} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered email missing %q", want)
		}
	}
}

func TestNewMailerDefaults(t *testing.T) {
	t.Setenv("SMTP_PORT", "")
	t.Setenv("EMAIL_FROM", "")
	m := NewMailer()
	if m.from != "noreply@konze.com" {
		t.Fatalf("expected default from address, got %q", m.from)
	}
}
