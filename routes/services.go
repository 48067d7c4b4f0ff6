package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Anthony-dorcas/konze-backend/controllers"
	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

// registerServiceRoutes mounts the /api/services endpoints. Catalog reads
// are public; mutations require a verified session.
func registerServiceRoutes(api *mux.Router, db *gorm.DB, files *utils.FileStore) {
	ctrl := controllers.NewServiceController(db, files)

	r := api.PathPrefix("/services").Subrouter()

	r.HandleFunc("", ctrl.List).Methods(http.MethodGet)
	r.HandleFunc("/categories", ctrl.Categories).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}", ctrl.Get).Methods(http.MethodGet)

	r.Handle("", middleware.AuthMiddleware(http.HandlerFunc(ctrl.Create))).Methods(http.MethodPost)
	r.Handle("/{id:[0-9]+}", middleware.AuthMiddleware(http.HandlerFunc(ctrl.Update))).Methods(http.MethodPut)
	r.Handle("/{id:[0-9]+}", middleware.AuthMiddleware(http.HandlerFunc(ctrl.Delete))).Methods(http.MethodDelete)
	r.Handle("/{id:[0-9]+}/images", middleware.AuthMiddleware(http.HandlerFunc(ctrl.UploadImages))).Methods(http.MethodPost)
	r.Handle("/{id:[0-9]+}/images/{imageId:[0-9]+}", middleware.AuthMiddleware(http.HandlerFunc(ctrl.DeleteImage))).Methods(http.MethodDelete)
}
