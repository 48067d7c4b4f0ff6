package routes

import (
	"log"
	"net/http"
	"os"
	"strings"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/Anthony-dorcas/konze-backend/database"
	"github.com/Anthony-dorcas/konze-backend/services"
	"github.com/Anthony-dorcas/konze-backend/utils"
)

// InitRouter wires the controllers, applies CORS and returns the root handler.
func InitRouter() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK"})
	}).Methods(http.MethodGet)

	files, err := utils.NewFileStore()
	if err != nil {
		// Uploads return 503 until storage is configured; everything else works.
		log.Printf("[routes] file storage disabled: %v", err)
		files = nil
	}
	mailer := services.NewMailer()

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Route not found"})
	})

	registerAuthRoutes(api, database.DB, mailer, files)
	registerInvestmentRoutes(api, database.DB, files)
	registerServiceRoutes(api, database.DB, files)
	registerContactRoutes(api, database.DB, files, mailer)

	return corsHandler()(r)
}

// corsHandler builds the CORS wrapper from CORS_ALLOWED_ORIGINS; "*" when unset.
func corsHandler() func(http.Handler) http.Handler {
	origins := []string{"*"}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(origins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
		gorillahandlers.AllowCredentials(),
	)
}
