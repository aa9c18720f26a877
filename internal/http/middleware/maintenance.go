package middleware

import (
	"net/http"

	"trading_platform/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Maintenance returns 503 for user-facing routes while the platform is in
// maintenance mode. The flag is read from the settings store on every request
// so an admin edit takes effect immediately.
func Maintenance(db *pgxpool.Pool) gin.HandlerFunc {
	settingsRepo := repository.NewSettingsRepository(db)
	return func(c *gin.Context) {
		settings, err := settingsRepo.Get(c.Request.Context())
		if err != nil {
			// settings unreadable is a store failure, not maintenance
			c.Next()
			return
		}
		if settings.MaintenanceMode {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":       "platform under maintenance",
				"maintenance": true,
			})
			return
		}
		c.Next()
	}
}
