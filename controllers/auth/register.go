package auth

import (
	"log"
	"net/http"

	"github.com/Anthony-dorcas/konze-backend/database"
	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=8,password"`
}

// Register creates an unverified account, emails a 6-digit verification code
// and issues a session token so the client can poll verification endpoints.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Email = normalizeEmail(req.Email)

	var count int64
	if err := c.DB.Model(&models.User{}).
		Where("email = ? OR phone = ?", req.Email, req.Phone).
		Count(&count).Error; err != nil {
		log.Printf("[auth] register lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if count > 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "User already exists with this email or phone"})
		return
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  "user",
	}
	if err := user.SetPassword(req.Password); err != nil {
		log.Printf("[auth] password hash failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	code, err := user.GenerateVerificationCode()
	if err != nil {
		log.Printf("[auth] code generation failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := c.DB.Create(&user).Error; err != nil {
		// Conflict can still surface here when two registrations race.
		if database.IsDuplicateKey(err) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "User already exists with this email or phone"})
			return
		}
		log.Printf("[auth] register create failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := c.Mail.SendVerificationEmail(user.Email, code, user.Name); err != nil {
		// The account exists; the code can be re-requested.
		log.Printf("[auth] verification email to %s failed: %v", user.Email, err)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		log.Printf("[auth] token generation failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.SetTokenCookie(w, token)

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful. Please check your email for verification code.",
		Data: map[string]interface{}{
			"token": token,
			"user":  publicUser(&user),
		},
	})
}

// publicUser is the user shape returned by auth endpoints.
func publicUser(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":            u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"phone":         u.Phone,
		"role":          u.Role,
		"is_verified":   u.IsVerified,
		"profile_image": u.ProfileImage,
		"created_at":    u.CreatedAt,
	}
}
