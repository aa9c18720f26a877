package middleware

import (
	"net/http"
	"strings"

	"trading_platform/internal/repository"
	"trading_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JWT authenticates the request from a Bearer token and stores user_id in the
// gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// Blocked rejects suspended accounts on every authenticated request, not just
// at login, so a block takes effect before an already-issued JWT expires.
func Blocked(db *pgxpool.Pool) gin.HandlerFunc {
	userRepo := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		uidVal, ok := c.Get("user_id")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, _ := uidVal.(int64)

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if user.IsBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account blocked"})
			return
		}
		c.Next()
	}
}

// Admin loads the authenticated user and requires the admin flag. Blocked
// accounts are rejected here too; suspension and privilege are independent
// flags.
func Admin(db *pgxpool.Pool) gin.HandlerFunc {
	userRepo := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		uidVal, ok := c.Get("user_id")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, _ := uidVal.(int64)

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if user.IsBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account blocked"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set("admin_user", user)
		c.Next()
	}
}
