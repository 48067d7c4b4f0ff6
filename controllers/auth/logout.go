package auth

import (
	"log"
	"net/http"

	"github.com/Anthony-dorcas/konze-backend/utils"
)

// Logout clears the session cookie and, when Redis is configured, denylists
// the token's jti for the remainder of its lifetime.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	if tokenStr := utils.TokenFromRequest(r); tokenStr != "" {
		if _, jti, err := utils.ValidateToken(tokenStr); err == nil && jti != "" {
			if err := utils.RevokeJTI(jti, utils.TokenTTL()); err != nil {
				// Best effort: the cookie is cleared regardless.
				log.Printf("[auth] jti revoke failed: %v", err)
			}
		}
	}

	utils.ClearTokenCookie(w)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
