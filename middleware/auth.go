package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Anthony-dorcas/konze-backend/database"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/utils"

	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, status int, resp map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// AuthMiddleware authenticates the request from the Authorization header or
// the token cookie and rejects tokens for unverified accounts. Invalid and
// expired tokens are reported identically to the client.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := utils.TokenFromRequest(r)
		if tokenStr == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Not authorized to access this route",
			})
			return
		}

		userID, _, err := utils.ValidateToken(tokenStr)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Not authorized",
			})
			return
		}

		var user models.User
		if err := database.DB.Select("id, is_verified").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "User not found",
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"message": "Server error",
			})
			return
		}

		if !user.IsVerified {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"success": false,
				"message": "Please verify your email address",
			})
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenOnlyMiddleware authenticates the token without the verified-account
// gate. Registration issues a session before the email is verified, so the
// logout and verification-adjacent routes must accept such sessions.
func TokenOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := utils.TokenFromRequest(r)
		if tokenStr == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Not authorized to access this route",
			})
			return
		}
		userID, _, err := utils.ValidateToken(tokenStr)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Not authorized",
			})
			return
		}
		ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
