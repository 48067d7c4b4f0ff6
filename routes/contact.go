package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/controllers"
	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

// registerContactRoutes mounts the /api/contact endpoints. Intake is public
// behind a strict per-IP limiter; inbox management requires a session.
func registerContactRoutes(api *mux.Router, db *gorm.DB, files *utils.FileStore, mail controllers.ContactMailer) {
	ctrl := controllers.NewContactController(db, files, mail)
	limiter := middleware.NewIPRateLimiter(5, time.Hour)

	r := api.PathPrefix("/contact").Subrouter()

	r.Handle("", limiter.Middleware(http.HandlerFunc(ctrl.Create))).Methods(http.MethodPost)

	r.Handle("", middleware.AuthMiddleware(http.HandlerFunc(ctrl.List))).Methods(http.MethodGet)
	r.Handle("/stats", middleware.AuthMiddleware(http.HandlerFunc(ctrl.Stats))).Methods(http.MethodGet)
	r.Handle("/{id:[0-9]+}", middleware.AuthMiddleware(http.HandlerFunc(ctrl.Get))).Methods(http.MethodGet)
	r.Handle("/{id:[0-9]+}", middleware.AuthMiddleware(http.HandlerFunc(ctrl.UpdateStatus))).Methods(http.MethodPut)
	r.Handle("/{id:[0-9]+}", middleware.AuthMiddleware(http.HandlerFunc(ctrl.Delete))).Methods(http.MethodDelete)
}
