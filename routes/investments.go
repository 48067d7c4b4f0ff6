package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/controllers/users"
	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

// registerInvestmentRoutes mounts the /api/investments endpoints. All of
// them require a verified session.
func registerInvestmentRoutes(api *mux.Router, db *gorm.DB, files *utils.FileStore) {
	ctrl := users.NewInvestmentController(db, files)

	r := api.PathPrefix("/investments").Subrouter()
	r.Use(middleware.AuthMiddleware)

	r.HandleFunc("", ctrl.Create).Methods(http.MethodPost)
	r.HandleFunc("", ctrl.List).Methods(http.MethodGet)
	r.HandleFunc("/stats", ctrl.Stats).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}", ctrl.Get).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}", ctrl.Update).Methods(http.MethodPut)
	r.HandleFunc("/{id:[0-9]+}/documents", ctrl.UploadDocuments).Methods(http.MethodPost)
	r.HandleFunc("/{id:[0-9]+}/documents/{docId:[0-9]+}", ctrl.DeleteDocument).Methods(http.MethodDelete)
}
