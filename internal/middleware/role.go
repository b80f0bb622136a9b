package middleware

import (
	"net/http"                           // HTTP status codes
	"restaurant_booking/internal/domain" // Importing domain models
	"strings"                            // Header inspection

	"github.com/gin-gonic/gin" // Gin web framework
)

// ErrorTemplate renders forbidden and throttled responses for HTML clients
const ErrorTemplate = "error.tmpl"

// RequireLogin redirects anonymous visitors to the login page
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "login required"})
				return
			}
			c.Redirect(http.StatusFound, "/login") // Send the visitor to the login form
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin lets only restaurant administrators through
func RequireAdmin() gin.HandlerFunc {
	return requireRole(domain.Role.CanManageRestaurants, "admin access required")
}

// RequireCustomer lets only regular users through; admins may not book or favorite
func RequireCustomer() gin.HandlerFunc {
	return requireRole(domain.Role.CanReserve, "only customers can do this")
}

// requireRole runs after RequireLogin and checks the session's role
func requireRole(allowed func(domain.Role) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !allowed(user.Role) {
			Deny(c, http.StatusForbidden, message) // Wrong role
			return
		}
		c.Next() // Role allowed, proceed to the next handler
	}
}

// Deny aborts with status, as JSON for JSON clients and as an error page otherwise
func Deny(c *gin.Context, status int, message string) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
		return
	}
	c.HTML(status, ErrorTemplate, gin.H{
		"CurrentUser": CurrentUser(c),
		"Status":      status,
		"Message":     message,
	})
	c.Abort()
}

// WantsJSON reports whether the client asked for a JSON response
func WantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
