package api

import (
	"context"  // Check deadlines
	"net/http" // HTTP status codes
	"time"     // Check timeout

	"github.com/gin-gonic/gin" // Gin web framework
)

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

const healthTimeout = 2 * time.Second

// HealthHandler runs every check and returns 503 if any fails
func HealthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		overall := "ok"
		if status != http.StatusOK {
			overall = "unavailable"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}
