package models

import (
	"testing"
	"time"
)

func TestSetAndCheckPassword(t *testing.T) {
	var u User
	if err := u.SetPassword("Sup3rSecret!"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if u.Password == "Sup3rSecret!" {
		t.Fatal("password stored in plaintext")
	}
	if !u.CheckPassword("Sup3rSecret!") {
		t.Fatal("correct password rejected")
	}
	if u.CheckPassword("wrong-password") {
		t.Fatal("wrong password accepted")
	}
}

func TestVerificationCodeIsSixDigits(t *testing.T) {
	var u User
	code, err := u.GenerateVerificationCode()
	if err != nil {
		t.Fatalf("GenerateVerificationCode failed: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digit code, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit in code %q", code)
		}
	}
	if u.VerificationCode == nil || *u.VerificationCode != code {
		t.Fatal("code not stored on user")
	}
	if u.VerificationCodeExpires == nil {
		t.Fatal("expiry not stored on user")
	}
}

func TestConsumeVerificationCodeSingleUse(t *testing.T) {
	var u User
	code, err := u.GenerateVerificationCode()
	if err != nil {
		t.Fatalf("GenerateVerificationCode failed: %v", err)
	}
	now := time.Now()

	if u.ConsumeVerificationCode("000000", now) && code != "000000" {
		t.Fatal("wrong code accepted")
	}
	if !u.ConsumeVerificationCode(code, now) {
		t.Fatal("valid code rejected")
	}
	if !u.IsVerified {
		t.Fatal("user not marked verified")
	}
	if u.VerificationCode != nil || u.VerificationCodeExpires != nil {
		t.Fatal("code not cleared after consumption")
	}
	if u.ConsumeVerificationCode(code, now) {
		t.Fatal("code accepted twice")
	}
}

func TestConsumeVerificationCodeExpired(t *testing.T) {
	var u User
	code, err := u.GenerateVerificationCode()
	if err != nil {
		t.Fatalf("GenerateVerificationCode failed: %v", err)
	}

	late := time.Now().Add(CodeTTL + time.Minute)
	if u.ConsumeVerificationCode(code, late) {
		t.Fatal("expired code accepted")
	}
	if u.IsVerified {
		t.Fatal("user verified via expired code")
	}
}

func TestConsumeResetCode(t *testing.T) {
	var u User
	if err := u.SetPassword("OldPassw0rd!"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	code, err := u.GenerateResetCode()
	if err != nil {
		t.Fatalf("GenerateResetCode failed: %v", err)
	}
	now := time.Now()

	ok, err := u.ConsumeResetCode("999999", "NewPassw0rd!", now)
	if err != nil {
		t.Fatalf("ConsumeResetCode errored: %v", err)
	}
	if ok && code != "999999" {
		t.Fatal("wrong reset code accepted")
	}

	ok, err = u.ConsumeResetCode(code, "NewPassw0rd!", now)
	if err != nil {
		t.Fatalf("ConsumeResetCode errored: %v", err)
	}
	if !ok {
		t.Fatal("valid reset code rejected")
	}
	if !u.CheckPassword("NewPassw0rd!") {
		t.Fatal("new password not set")
	}
	if u.CheckPassword("OldPassw0rd!") {
		t.Fatal("old password still valid")
	}

	// Single use.
	ok, _ = u.ConsumeResetCode(code, "AnotherPass1!", now)
	if ok {
		t.Fatal("reset code accepted twice")
	}
}

func TestConsumeResetCodeExpired(t *testing.T) {
	var u User
	code, err := u.GenerateResetCode()
	if err != nil {
		t.Fatalf("GenerateResetCode failed: %v", err)
	}

	late := time.Now().Add(CodeTTL + time.Second)
	ok, err := u.ConsumeResetCode(code, "NewPassw0rd!", late)
	if err != nil {
		t.Fatalf("ConsumeResetCode errored: %v", err)
	}
	if ok {
		t.Fatal("expired reset code accepted")
	}
}
