// Package server assembles the HTTP router.
package server

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "internship-portal-backend/docs"
	"internship-portal-backend/internal/config"
	"internship-portal-backend/internal/handlers"
	"internship-portal-backend/internal/metrics"
	"internship-portal-backend/internal/middleware"
	"internship-portal-backend/internal/ratelimit"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Profiles     *handlers.ProfilesHandler
	Internships  *handlers.InternshipsHandler
	Applications *handlers.ApplicationsHandler
	Resumes      *handlers.ResumesHandler
	Dashboard    *handlers.DashboardHandler
}

// NewRouter registers every route. A nil limiter disables rate limiting.
func NewRouter(cfg *config.Config, logger *slog.Logger, h Handlers, limiter *ratelimit.Limiter) *gin.Engine {
	metrics.Register()

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(metrics.GinMiddleware())

	router.GET("/health", h.Health.Health)
	router.GET("/metrics", metrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.SignUp)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/confirm", h.Auth.Confirm)
	}

	companyOnly := middleware.RequireRole(middleware.RoleCompany)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		students := protected.Group("/students")
		students.POST("", h.Profiles.CreateStudent)
		students.GET("/me", h.Profiles.GetStudent)
		students.PUT("/me", h.Profiles.UpdateStudent)
		students.GET("/me/dashboard", h.Dashboard.Student)

		companies := protected.Group("/companies", companyOnly)
		companies.POST("", h.Profiles.CreateCompany)
		companies.GET("/me", h.Profiles.GetCompany)
		companies.PUT("/me", h.Profiles.UpdateCompany)
		companies.GET("/me/dashboard", h.Dashboard.Company)
		companies.GET("/me/internships", h.Internships.ListMine)
		companies.GET("/me/applications", h.Applications.ListForCompany)

		protected.POST("/internships", companyOnly, h.Internships.Create)
		protected.GET("/internships", h.Internships.List)
		protected.GET("/internships/:id", h.Internships.Get)
		protected.PATCH("/internships/:id", companyOnly, h.Internships.Update)

		protected.POST("/applications", limiter.Middleware(ratelimit.ActionApply, cfg.RateLimitApply), h.Applications.Submit)
		protected.GET("/applications", h.Applications.ListForStudent)
		protected.GET("/applications/:id", h.Applications.Get)
		protected.PATCH("/applications/:id/status", companyOnly, h.Applications.UpdateStatus)

		protected.POST("/resumes/upload", limiter.Middleware(ratelimit.ActionUpload, cfg.RateLimitUpload), h.Resumes.Upload)
		protected.GET("/resumes", h.Resumes.List)
		protected.PUT("/resumes/:id/primary", h.Resumes.SetPrimary)
		protected.DELETE("/resumes/:id", h.Resumes.Delete)
	}

	return router
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
