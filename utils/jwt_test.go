package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	userID, jti, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
	if jti == "" {
		t.Fatal("expected a jti claim")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	token, err := GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	if _, _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := jwt.MapClaims{
		"id":  uint(9),
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"jti": "expired-token",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, _, err := ValidateToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if _, _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestTokenFromRequestBearerHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	if got := TokenFromRequest(r); got != "abc123" {
		t.Fatalf("expected abc123, got %q", got)
	}
}

func TestTokenFromRequestCookieFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	if got := TokenFromRequest(r); got != "cookie-token" {
		t.Fatalf("expected cookie-token, got %q", got)
	}
}

func TestTokenFromRequestEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TokenFromRequest(r); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func TestSetAndClearTokenCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetTokenCookie(rec, "session-token")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "token" || c.Value != "session-token" {
		t.Fatalf("unexpected cookie %q=%q", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Fatal("cookie must be httpOnly")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Fatal("cookie must be SameSite=Strict")
	}

	rec = httptest.NewRecorder()
	ClearTokenCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatal("clear cookie must expire immediately")
	}
}

func TestTokenTTLDefaultsToSevenDays(t *testing.T) {
	t.Setenv("JWT_EXPIRE_DAYS", "")
	if got := TokenTTL(); got != 7*24*time.Hour {
		t.Fatalf("expected 168h, got %v", got)
	}
	t.Setenv("JWT_EXPIRE_DAYS", "2")
	if got := TokenTTL(); got != 48*time.Hour {
		t.Fatalf("expected 48h, got %v", got)
	}
}
