package main

import (
	"context"
	"log"
	"net/http"

	"github.com/menucat/menu-service/internal/cache"
	"github.com/menucat/menu-service/internal/config"
	"github.com/menucat/menu-service/internal/database"
	"github.com/menucat/menu-service/internal/router"
	"github.com/menucat/menu-service/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	utils.LogInfo("Database connected", map[string]interface{}{"host": cfg.Database.Host, "name": cfg.Database.Name})

	cch, err := cache.New(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	if cch != nil {
		defer cch.Close()
		utils.LogInfo("Listing cache enabled", map[string]interface{}{"addr": cfg.Redis.Addr, "ttl": cfg.Redis.CacheTTL.String()})
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.LoadHTMLGlob(cfg.TemplateGlob)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, db, cch, cfg)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})
	if err := engine.Run(":" + cfg.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
