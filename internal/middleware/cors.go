package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

var relayHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// APICORS is the browser policy for the /api routes.
func APICORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: !containsWildcard(allowedOrigins),
	})
}

// RelayCORS answers every OPTIONS request on the relay endpoints with 204 and
// the fixed header set, and marks actual responses as readable by any origin.
// The allowed origin never varies, so no Vary header is written.
func RelayCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Headers", strings.Join(relayHeaders, ", "))
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
