package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"golang-advisorybackend/helpers"
	"golang-advisorybackend/models"
)

const (
	ContextUserID    = "user_id"
	ContextEmail     = "email"
	ContextFirstName = "first_name"
	ContextLastName  = "last_name"
	ContextRole      = "role"
)

// Authentication validates the bearer token and stores the claims in the
// request context.
func Authentication(tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "not authorized to access this route",
			})
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "not authorized to access this route",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextFirstName, claims.FirstName)
		c.Set(ContextLastName, claims.LastName)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// Authorize rejects requests whose authenticated role is not in the
// allowed set.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "user role " + role + " is not authorized to access this route",
		})
	}
}

// RequireAdvisor is shorthand for the doctor-scoped routes.
func RequireAdvisor() gin.HandlerFunc {
	return Authorize(models.RoleAdvisor, models.RoleAdmin)
}
