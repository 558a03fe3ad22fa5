package main

import (
	"log"

	"github.com/careerpilot/autofill-backend/internal/config"
	"github.com/careerpilot/autofill-backend/internal/database"
	"github.com/careerpilot/autofill-backend/internal/handlers"
	"github.com/careerpilot/autofill-backend/internal/middleware"
	"github.com/careerpilot/autofill-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration (.env + optional policy.yaml)
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseURL)

	// 3. Initialize Core Services (Dependencies)
	profileService := services.NewProfileService(db)
	templateService := services.NewTemplateService(db)
	mappingService := services.NewMappingService(db, cfg.Guard.ConfidenceAlpha, cfg.Guard.DefaultConfidence)
	applicationService := services.NewApplicationService(db, cfg.Guard, mappingService)
	fillService := services.NewFillService(profileService, templateService, mappingService)
	suggestService := services.NewSuggestService(cfg.GeminiAPIKey)

	// 4. Initialize Handlers
	profileHandler := handlers.NewProfileHandler(profileService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	mappingHandler := handlers.NewMappingHandler(mappingService, suggestService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, fillService)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // extension origins vary, locked down at auth instead
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api/v1")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		// Profile Routes
		api.GET("/profiles/me", profileHandler.GetMe)
		api.PUT("/profiles/me", profileHandler.UpdateMe)

		// Template Routes
		api.POST("/templates", templateHandler.Create)
		api.GET("/templates", templateHandler.List)
		api.GET("/templates/:id", templateHandler.Get)
		api.PUT("/templates/:id", templateHandler.Update)
		api.DELETE("/templates/:id", templateHandler.Delete)

		// Site Mapping Routes
		api.POST("/mappings", mappingHandler.Upsert)
		api.GET("/mappings", mappingHandler.List)
		api.GET("/mappings/:id", mappingHandler.Get)
		api.POST("/mappings/:id/delete-entries", mappingHandler.DeleteEntries)
		api.DELETE("/mappings/:id", mappingHandler.Delete)
		api.POST("/mappings/suggest", mappingHandler.Suggest)

		// Fill Plan + Application Routes
		api.POST("/fill-plans", applicationHandler.Resolve)
		api.POST("/applications/admit", applicationHandler.Admit)
		api.POST("/applications", applicationHandler.Create)
		api.GET("/applications", applicationHandler.List)
		api.GET("/applications/:id", applicationHandler.Get)
		api.PUT("/applications/:id/status", applicationHandler.UpdateStatus)

		// Analytics
		api.GET("/analytics/summary", applicationHandler.Summary)
	}

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
