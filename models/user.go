package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID                      uint         `gorm:"primaryKey" json:"id"`
	Name                    string       `gorm:"size:100;not null" json:"name"`
	Email                   string       `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone                   string       `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Password                string       `gorm:"size:255;not null" json:"-"`
	Role                    string       `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	IsVerified              bool         `gorm:"default:false" json:"is_verified"`
	VerificationCode        *string      `gorm:"size:6" json:"-"`
	VerificationCodeExpires *time.Time   `json:"-"`
	ResetPasswordToken      *string      `gorm:"size:6" json:"-"`
	ResetPasswordExpires    *time.Time   `json:"-"`
	ProfileImage            *string      `gorm:"size:255" json:"profile_image,omitempty"`
	Investments             []Investment `gorm:"foreignKey:UserID" json:"investments,omitempty"`
	CreatedAt               time.Time    `json:"created_at"`
	UpdatedAt               time.Time    `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// CodeTTL is how long verification and reset codes stay valid.
const CodeTTL = 10 * time.Minute

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword compares a candidate password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// GenerateVerificationCode issues a fresh 6-digit code with a 10 minute
// expiry, replacing any previous one, and returns it for delivery.
func (u *User) GenerateVerificationCode() (string, error) {
	code, err := sixDigitCode()
	if err != nil {
		return "", err
	}
	exp := time.Now().Add(CodeTTL)
	u.VerificationCode = &code
	u.VerificationCodeExpires = &exp
	return code, nil
}

// ConsumeVerificationCode validates the code against the stored one and its
// expiry. On success the code is cleared so it cannot be replayed, and the
// user transitions to verified.
func (u *User) ConsumeVerificationCode(code string, now time.Time) bool {
	if u.VerificationCode == nil || u.VerificationCodeExpires == nil {
		return false
	}
	if *u.VerificationCode != code || !now.Before(*u.VerificationCodeExpires) {
		return false
	}
	u.IsVerified = true
	u.VerificationCode = nil
	u.VerificationCodeExpires = nil
	return true
}

// GenerateResetCode issues a fresh 6-digit password reset code with a
// 10 minute expiry and returns it for delivery.
func (u *User) GenerateResetCode() (string, error) {
	code, err := sixDigitCode()
	if err != nil {
		return "", err
	}
	exp := time.Now().Add(CodeTTL)
	u.ResetPasswordToken = &code
	u.ResetPasswordExpires = &exp
	return code, nil
}

// ConsumeResetCode validates a reset code and, on success, replaces the
// password hash and clears the token so it is single use.
func (u *User) ConsumeResetCode(code, newPassword string, now time.Time) (bool, error) {
	if u.ResetPasswordToken == nil || u.ResetPasswordExpires == nil {
		return false, nil
	}
	if *u.ResetPasswordToken != code || !now.Before(*u.ResetPasswordExpires) {
		return false, nil
	}
	if err := u.SetPassword(newPassword); err != nil {
		return false, err
	}
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	return true, nil
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
