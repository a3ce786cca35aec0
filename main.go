package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"nanofi-platform/api/pkg/clients/chain"
	"nanofi-platform/api/pkg/clients/email"
	"nanofi-platform/api/pkg/config"
	"nanofi-platform/api/pkg/db"
	"nanofi-platform/api/services/review"
	"nanofi-platform/api/services/storage"
	"nanofi-platform/api/services/wizard"
)

func main() {
	ctx := context.Background()
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(logHandler))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return
	}
	defer pool.Close()

	// setup router
	mainRouter := mux.NewRouter()
	apiRouter := mainRouter.PathPrefix("/api/v1").Subrouter()

	pgStore, err := storage.NewInstance(pool)
	if err != nil {
		slog.Error("Failed to create store instance", "error", err)
		return
	}

	chainClient := chain.NewStubClient(time.Duration(cfg.AnchorDelayMs) * time.Millisecond)
	emailClient := email.NewStubClient("no-reply@nanofi.example")

	finalizer, err := wizard.NewFinalizer(pgStore, chainClient, emailClient)
	if err != nil {
		slog.Error("Failed to create finalizer", "error", err)
		return
	}

	wizardService, err := wizard.NewService(wizard.NewSessionStore(), finalizer)
	if err != nil {
		slog.Error("Failed to create wizard service", "error", err)
		return
	}
	wizardService.LoadRoutes(apiRouter)

	reviewService, err := review.NewService(pgStore, emailClient)
	if err != nil {
		slog.Error("Failed to create review service", "error", err)
		return
	}
	reviewService.LoadRoutes(apiRouter)

	corsHandler := handlers.CORS(
		// Frontend URL
		handlers.AllowedOrigins([]string{cfg.AllowedOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)(mainRouter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		slog.Error("Server error", "error", err)

	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Could not stop server gracefully", "error", err)
			srv.Close()
		}
	}
}
