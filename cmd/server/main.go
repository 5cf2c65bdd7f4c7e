// @title           Internship Portal API
// @version         1.0.0
// @description     Backend API for the internship marketplace: students apply to postings with an uploaded resume, companies review applications. Authentication is delegated to Supabase Auth.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/docs"
	"internship-portal-backend/internal/config"
	"internship-portal-backend/internal/database"
	"internship-portal-backend/internal/handlers"
	"internship-portal-backend/internal/logging"
	"internship-portal-backend/internal/ratelimit"
	"internship-portal-backend/internal/server"
	"internship-portal-backend/internal/services"
	"internship-portal-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Point Swagger UI at the deployed host.
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrator, err := database.NewMigrator(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("failed to initialize migrator", "error", err)
		os.Exit(1)
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	migrator.Close()

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to initialize database client", "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	storageClient := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseResumeBucket)

	authClient, err := supabase.NewAuthClient(cfg)
	if err != nil {
		logger.Error("failed to initialize auth client", "error", err)
		os.Exit(1)
	}

	limiter, err := ratelimit.NewFromURL(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Warn("rate limiting disabled", "error", err)
		limiter = ratelimit.New(nil, logger)
	}
	defer limiter.Close()

	opts := []services.Option{services.WithLogger(logger)}
	profileService := services.NewProfileService(dbClient, opts...)
	internshipService := services.NewInternshipService(dbClient, opts...)
	applicationService := services.NewApplicationService(dbClient, opts...)
	resumeService := services.NewResumeService(dbClient, storageClient, opts...)
	dashboardService := services.NewDashboardService(dbClient, opts...)

	router := server.NewRouter(cfg, logger, server.Handlers{
		Health:       handlers.NewHealthHandler(dbClient),
		Auth:         handlers.NewAuthHandler(authClient),
		Profiles:     handlers.NewProfilesHandler(profileService),
		Internships:  handlers.NewInternshipsHandler(internshipService),
		Applications: handlers.NewApplicationsHandler(applicationService),
		Resumes:      handlers.NewResumesHandler(resumeService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService),
	}, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
