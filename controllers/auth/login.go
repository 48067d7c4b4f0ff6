package auth

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords produce the identical 401 so accounts cannot be enumerated.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Email = normalizeEmail(req.Email)

	var user models.User
	err := c.DB.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid credentials"})
			return
		}
		log.Printf("[auth] login lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	if !user.IsVerified {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Please verify your email address"})
		return
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
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"user":  publicUser(&user),
		},
	})
}
