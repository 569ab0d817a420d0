package handlers

import (
	"time"

	"github.com/Mim-rose/nexthire-server/internal/auth"
	"github.com/Mim-rose/nexthire-server/internal/config"
	"github.com/Mim-rose/nexthire-server/internal/database"
	"github.com/Mim-rose/nexthire-server/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires services and handlers over store and registers every route.
func NewRouter(cfg config.Config, store database.Store) *gin.Engine {
	jobHandler := NewJobHandler(services.NewJobService(store))
	companyHandler := NewCompanyHandler(services.NewCompanyService(store))
	applicationHandler := NewApplicationHandler(services.NewApplicationService(store, store), cfg.MaxUploadBytes)
	subscriptionHandler := NewSubscriptionHandler(services.NewSubscriptionService(store))
	authHandler := NewAuthHandler(auth.NewTokenIssuer(cfg.JWTSecret), cfg.IsProduction())

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	r.Use(StoreTimeout(cfg.StoreTimeout))

	r.GET("/", Home)
	r.GET("/health", HealthCheck(store))

	api := r.Group("/api")
	{
		api.GET("/categories", jobHandler.Categories)
		api.GET("/locations", jobHandler.Locations)
		api.GET("/search", jobHandler.Search)

		// Company Routes
		api.GET("/companies", companyHandler.Companies)
		api.GET("/companies/all", companyHandler.Companies)
		api.GET("/companies/:companyName", companyHandler.CompanyJobs)

		api.POST("/subscribe", subscriptionHandler.Subscribe)
	}

	// Session Routes
	r.POST("/jwt", authHandler.IssueToken)
	r.GET("/check-auth", authHandler.CheckAuth)
	r.POST("/logout", authHandler.Logout)

	// Job Routes
	jobs := r.Group("/jobs")
	{
		jobs.GET("/featured", jobHandler.Featured)
		jobs.GET("/all", jobHandler.AllJobs)
		jobs.GET("/category/:category", jobHandler.JobsByCategory)
		jobs.GET("/:id", jobHandler.JobByID)
		jobs.GET("", jobHandler.JobsByPoster)
		jobs.POST("", jobHandler.CreateJob)
	}

	// Application Routes
	apps := r.Group("/job-applications")
	{
		apps.GET("", applicationHandler.ForApplicant)
		apps.POST("", applicationHandler.Submit)
		apps.DELETE("/:id", applicationHandler.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
