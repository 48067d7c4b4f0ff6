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

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Code     string `json:"code" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=8,password"`
}

// ForgotPassword issues a 6-digit reset code to a known account. Unknown
// emails get a 404; the reset flow is not enumeration-safe, unlike login.
func (c *Controller) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
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
		log.Printf("[auth] forgot-password lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	code, err := user.GenerateResetCode()
	if err != nil {
		log.Printf("[auth] reset code generation failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := c.DB.Model(&user).Select("reset_password_token", "reset_password_expires").
		Updates(map[string]interface{}{
			"reset_password_token":   user.ResetPasswordToken,
			"reset_password_expires": user.ResetPasswordExpires,
		}).Error; err != nil {
		log.Printf("[auth] forgot-password update failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := c.Mail.SendPasswordResetEmail(user.Email, code, user.Name); err != nil {
		log.Printf("[auth] reset email to %s failed: %v", user.Email, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not send reset email"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Password reset code sent. Please check your email.",
	})
}

// ResetPassword consumes a reset code and replaces the password. The stored
// code is cleared in the same update so it cannot be replayed.
func (c *Controller) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var user models.User
	err := c.DB.Where("reset_password_token = ? AND reset_password_expires > ?", req.Code, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid or expired reset code"})
			return
		}
		log.Printf("[auth] reset-password lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	ok, err := user.ConsumeResetCode(req.Code, req.Password, time.Now())
	if err != nil {
		log.Printf("[auth] password hash failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid or expired reset code"})
		return
	}

	if err := c.DB.Model(&user).Select("password", "reset_password_token", "reset_password_expires").
		Updates(map[string]interface{}{
			"password":               user.Password,
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		}).Error; err != nil {
		log.Printf("[auth] reset-password update failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Password reset successful. You can now log in with your new password.",
	})
}
