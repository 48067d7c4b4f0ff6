package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

type verifyEmailRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type resendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyEmail consumes a pending verification code. The code is single use;
// a second submission of the same code fails like an unknown one.
func (c *Controller) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	// Codes are looked up directly; the expiry predicate keeps stale codes
	// indistinguishable from unknown ones.
	var user models.User
	err := c.DB.Where("verification_code = ? AND verification_code_expires > ?", req.Code, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid or expired verification code"})
			return
		}
		log.Printf("[auth] verify lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if !user.ConsumeVerificationCode(req.Code, time.Now()) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid or expired verification code"})
		return
	}

	// Persist the verified flag and the cleared code columns together.
	if err := c.DB.Model(&user).Select("is_verified", "verification_code", "verification_code_expires").
		Updates(map[string]interface{}{
			"is_verified":               true,
			"verification_code":         nil,
			"verification_code_expires": nil,
		}).Error; err != nil {
		log.Printf("[auth] verify update failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := c.Mail.SendWelcomeEmail(user.Email, user.Name); err != nil {
		log.Printf("[auth] welcome email to %s failed: %v", user.Email, err)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		log.Printf("[auth] token generation failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.SetTokenCookie(w, token)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Email verified successfully",
		Data: map[string]interface{}{
			"token": token,
			"user":  publicUser(&user),
		},
	})
}

// ResendVerification replaces any pending code with a fresh one and resends
// the email. Already verified accounts are rejected.
func (c *Controller) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendCodeRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Email = normalizeEmail(req.Email)

	var user models.User
	err := c.DB.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		log.Printf("[auth] resend lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if user.IsVerified {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Email is already verified"})
		return
	}

	code, err := user.GenerateVerificationCode()
	if err != nil {
		log.Printf("[auth] code generation failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := c.DB.Model(&user).Select("verification_code", "verification_code_expires").
		Updates(map[string]interface{}{
			"verification_code":         user.VerificationCode,
			"verification_code_expires": user.VerificationCodeExpires,
		}).Error; err != nil {
		log.Printf("[auth] resend update failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := c.Mail.SendVerificationEmail(user.Email, code, user.Name); err != nil {
		log.Printf("[auth] verification email to %s failed: %v", user.Email, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not send verification email"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Verification code sent. Please check your email.",
	})
}
