package router

import (
	"database/sql"

	"github.com/menucat/menu-service/internal/cache"
	"github.com/menucat/menu-service/internal/config"
	"github.com/menucat/menu-service/internal/handlers"
	"github.com/menucat/menu-service/internal/middleware"
	"github.com/menucat/menu-service/internal/repositories"
	"github.com/menucat/menu-service/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers onto the engine.
func Setup(engine *gin.Engine, db *sql.DB, cch *cache.Cache, cfg *config.Config) {
	// Repositories
	categoryRepo := repositories.NewCategoryRepository(db)
	foodRepo := repositories.NewFoodRepository(db)
	toppingRepo := repositories.NewToppingRepository(db)

	// Services
	catalogService := services.NewCatalogService(categoryRepo, foodRepo, toppingRepo, cch)
	adminService := services.NewAdminService(categoryRepo, foodRepo, toppingRepo, db, cch)

	// Handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(adminService)
	authHandler := handlers.NewAuthHandler(cfg.Admin)
	pageHandler := handlers.NewPageHandler(catalogService)

	apiV1 := engine.Group("/api/v1")
	SetupCatalogRoutes(apiV1, catalogHandler)

	adminGroup := apiV1.Group("/admin")
	adminGroup.POST("/login", authHandler.Login)
	authenticated := adminGroup.Group("")
	authenticated.Use(middleware.AdminAuth(cfg.Admin.JWTSecret))
	SetupAdminRoutes(authenticated, adminHandler)

	SetupPageRoutes(engine, pageHandler)
}
