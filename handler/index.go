package handler

import (
	"net/http"
	"time"

	"bayka/models"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// Handler is the lightweight liveness probe deployed next to the API
// function. It never touches the database or Redis.
func Handler(w http.ResponseWriter, r *http.Request) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Response{
			Success: true,
			Message: "Bayka API",
			Data: gin.H{
				"status": "ok",
				"path":   c.Request.URL.Path,
				"uptime": time.Since(startedAt).Round(time.Second).String(),
			},
		})
	})
	engine.ServeHTTP(w, r)
}
