package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Anthony-dorcas/konze-backend/database"
	"github.com/Anthony-dorcas/konze-backend/middleware"
	"github.com/Anthony-dorcas/konze-backend/models"
	"github.com/Anthony-dorcas/konze-backend/routes"
)

func main() {
	// .env values never override real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("[main] no .env file found, relying on environment")
	}

	required := []string{"DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "JWT_SECRET"}
	var missing []string
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("[main] missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if _, err := database.Connect(); err != nil {
		log.Fatalf("[main] database connection failed: %v", err)
	}

	// Schema is migration-managed in production; automigrate is a dev shortcut.
	if strings.ToLower(os.Getenv("ENV")) != "production" {
		if err := database.DB.AutoMigrate(
			&models.User{},
			&models.Investment{},
			&models.InvestmentDocument{},
			&models.Service{},
			&models.ServiceImage{},
			&models.ContactMessage{},
			&models.ContactAttachment{},
		); err != nil {
			log.Fatalf("[main] automigrate failed: %v", err)
		}
	}

	handler := routes.InitRouter()
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.TimeoutMiddleware(handler)
	handler = middleware.MaxBodyMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.SecurityHeadersMiddleware(handler)
	handler = middleware.RequestLogMiddleware(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("[main] server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] graceful shutdown failed: %v", err)
	}
}
