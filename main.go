package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bayka/config"
	"bayka/database"
	_ "bayka/docs"
	"bayka/middleware"
	"bayka/routes"

	"github.com/gin-gonic/gin"
)

// @title Bayka Coffee Shop API
// @version 1.0
// @description Storefront API for Bayka: pages, catalog, cart, checkout and admin.
// @host localhost:8082
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.ConnectDB()
	defer config.CloseDB()

	if err := database.Migrate(ctx, config.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	config.ConnectRedis()
	defer config.CloseRedis()

	svc := routes.NewServices(config.AppConfig, config.DB, config.RedisClient)
	if err := svc.Auth.EnsureAdmin(ctx, config.AppConfig.AdminEmail, config.AppConfig.AdminPassword); err != nil {
		log.Printf("Failed to seed admin user: %v", err)
	}

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware(config.AppConfig.OriginURL, config.AppConfig.BaseURL))
	routes.SetupRoutes(router, config.AppConfig, svc)

	srv := &http.Server{
		Addr:              ":" + config.AppConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", srv.Addr)
		log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
