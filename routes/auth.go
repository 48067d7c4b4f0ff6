package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/controllers/auth"
	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

// registerAuthRoutes mounts the /api/auth endpoints. Credential and code
// endpoints share an aggressive per-IP limiter.
func registerAuthRoutes(api *mux.Router, db *gorm.DB, mail auth.Mailer, files *utils.FileStore) {
	ctrl := auth.NewController(db, mail, files)
	limiter := middleware.NewIPRateLimiter(20, 15*time.Minute)

	r := api.PathPrefix("/auth").Subrouter()

	limited := r.NewRoute().Subrouter()
	limited.Use(limiter.Middleware)
	limited.HandleFunc("/register", ctrl.Register).Methods(http.MethodPost)
	limited.HandleFunc("/login", ctrl.Login).Methods(http.MethodPost)
	limited.HandleFunc("/verify-email", ctrl.VerifyEmail).Methods(http.MethodPost)
	limited.HandleFunc("/resend-verification", ctrl.ResendVerification).Methods(http.MethodPost)
	limited.HandleFunc("/forgot-password", ctrl.ForgotPassword).Methods(http.MethodPost)
	limited.HandleFunc("/reset-password", ctrl.ResetPassword).Methods(http.MethodPost)

	// Logout accepts pre-verification sessions.
	r.Handle("/logout", middleware.TokenOnlyMiddleware(http.HandlerFunc(ctrl.Logout))).Methods(http.MethodPost)

	r.Handle("/profile", middleware.AuthMiddleware(http.HandlerFunc(ctrl.GetProfile))).Methods(http.MethodGet)
	r.Handle("/profile", middleware.AuthMiddleware(http.HandlerFunc(ctrl.UpdateProfile))).Methods(http.MethodPut)
	r.Handle("/profile/image", middleware.AuthMiddleware(http.HandlerFunc(ctrl.UploadProfileImage))).Methods(http.MethodPost)
}
