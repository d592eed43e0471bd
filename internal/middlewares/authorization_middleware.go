package middlewares

import (
	"net/http"

	"cardbinder/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RequireAdmin checks that the authenticated user is an admin. Must be
// used after Authenticate.
func RequireAdmin(userRepo *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		user, err := userRepo.FindUserByID(userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		if user.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required."})
			return
		}

		c.Set("authenticatedUser", user)
		c.Next()
	}
}
