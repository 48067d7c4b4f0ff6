package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/database"
	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

type updateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone string `json:"phone" validate:"omitempty,phone"`
}

// GetProfile returns the authenticated user with their investments preloaded.
func (c *Controller) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}

	var user models.User
	err := c.DB.Preload("Investments").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		log.Printf("[auth] profile fetch failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Data:    map[string]interface{}{"user": user},
	})
}

// UpdateProfile changes name and/or phone for the authenticated user.
func (c *Controller) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}

	var req updateProfileRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}

	var user models.User
	if err := c.DB.First(&user, userID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	if err := c.DB.Model(&user).Updates(updates).Error; err != nil {
		if database.IsDuplicateKey(err) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Phone number is already in use"})
			return
		}
		log.Printf("[auth] profile update failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    map[string]interface{}{"user": publicUser(&user)},
	})
}

// UploadProfileImage replaces the user's profile image. The previous object
// is deleted from storage after the new one is persisted.
func (c *Controller) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Not authorized"})
		return
	}
	if c.Files == nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{Success: false, Message: "File storage is not configured"})
		return
	}

	if err := r.ParseMultipartForm(utils.MaxUploadBytes); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form"})
		return
	}
	files, err := utils.ReadMultipartFiles(r, "profileImage", 1, utils.ImageExtensions)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}
	if len(files) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Profile image is required"})
		return
	}

	var user models.User
	if err := c.DB.First(&user, userID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	stored, err := c.Files.UploadBuffer(r.Context(), files[0].Data, "konze/profile", files[0].Name)
	if err != nil {
		log.Printf("[auth] profile image upload failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Image upload failed"})
		return
	}

	previous := utils.GetStringValue(user.ProfileImage)
	if err := c.DB.Model(&user).Update("profile_image", stored.URL).Error; err != nil {
		log.Printf("[auth] profile image update failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Old images share the public base URL prefix; strip it to recover the key.
	if previous != "" {
		if key := storageKeyFromURL(previous); key != "" {
			if err := c.Files.Delete(r.Context(), key); err != nil {
				log.Printf("[auth] old profile image delete failed: %v", err)
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Profile image updated successfully",
		Data:    map[string]interface{}{"profile_image": stored.URL},
	})
}

func storageKeyFromURL(url string) string {
	const marker = "/konze/"
	if i := strings.Index(url, marker); i >= 0 {
		return url[i+1:]
	}
	return ""
}
