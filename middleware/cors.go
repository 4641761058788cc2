package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const devOrigin = "http://localhost:5173"

// AllowedOrigins merges the dev storefront origin with every comma separated
// origin in the given lists.
func AllowedOrigins(lists ...string) []string {
	origins := []string{devOrigin}
	for _, list := range lists {
		for _, o := range strings.Split(list, ",") {
			o = strings.TrimRight(strings.TrimSpace(o), "/")
			if o != "" && !slices.Contains(origins, o) {
				origins = append(origins, o)
			}
		}
	}
	return origins
}

// CORSMiddleware allows credentialed requests so the cart cookie reaches the
// API from the storefront.
func CORSMiddleware(originURLs ...string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: AllowedOrigins(originURLs...),
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
