package api

import (
	"context"
	"log"
	"net/http"
	"sync"

	"bayka/config"
	"bayka/middleware"
	"bayka/routes"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

// initApp wires the router once per cold start. Migrations are left to the
// long-running server.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		config.ConnectDB()
		config.ConnectRedis()

		svc := routes.NewServices(config.AppConfig, config.DB, config.RedisClient)
		if err := svc.Auth.EnsureAdmin(context.Background(), config.AppConfig.AdminEmail, config.AppConfig.AdminPassword); err != nil {
			log.Printf("Failed to seed admin user: %v", err)
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.RequestID())
		router.Use(middleware.CORSMiddleware(config.AppConfig.OriginURL, config.AppConfig.BaseURL))

		routes.SetupRoutes(router, config.AppConfig, svc)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
