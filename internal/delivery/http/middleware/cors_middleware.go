package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// CORSMiddleware allows the configured frontend origin with credentials.
// Local dev origins are only added outside production.
func CORSMiddleware(frontendURL string, production bool) gin.HandlerFunc {
	origins := []string{}
	if frontendURL != "" {
		origins = append(origins, strings.TrimRight(frontendURL, "/"))
	}
	if !production {
		origins = append(origins, devOrigins...)
	}

	config := cors.DefaultConfig()
	if len(origins) == 0 {
		// same-origin only
		config.AllowOriginFunc = func(string) bool { return false }
	} else {
		config.AllowOrigins = dedupe(origins)
	}
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	config.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID", "Retry-After"}
	config.MaxAge = 24 * time.Hour
	return cors.New(config)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
