package middleware

import (
	"context"                            // Context for user lookups
	"errors"                             // Error comparison
	"net/http"                           // Cookie attributes
	"restaurant_booking/internal/domain" // Importing domain models
	"restaurant_booking/internal/store"  // Sentinel errors
	"restaurant_booking/internal/utils"  // Session token helpers
	"time"                               // Session lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// SessionCookie is the name of the signed session cookie
const SessionCookie = "session"

const currentUserKey = "currentUser"

// UserFinder loads the user a session points at
type UserFinder interface {
	FindUser(ctx context.Context, id uint) (*domain.User, error)
}

// Session resolves the session cookie to a user and stores it on the request
// context. Requests without a valid session continue anonymously.
func Session(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie) // Read the session cookie
		if err != nil || token == "" {
			c.Next() // Anonymous request
			return
		}
		claims, err := utils.ParseSessionToken(token, secret) // Verify signature and expiry
		if err != nil {
			ClearSession(c, false) // Drop a stale or forged cookie
			c.Next()
			return
		}
		// Role and existence come from the database, never from the cookie
		user, err := users.FindUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				logrus.WithFields(logrus.Fields{
					"user_id": claims.UserID, // Session user ID
					"error":   err.Error(),   // Error message
				}).Error("Session user lookup failed")
			}
			ClearSession(c, false)
			c.Next()
			return
		}
		c.Set(currentUserKey, user) // Store user for handlers
		c.Next()                    // Proceed to the next handler
	}
}

// CurrentUser returns the signed-in user, or nil for anonymous requests
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// StartSession issues a session cookie for the user
func StartSession(c *gin.Context, userID uint, secret string, ttl time.Duration, secure bool) error {
	token, err := utils.GenerateSessionToken(userID, secret, ttl)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
	return nil
}

// ClearSession expires the session cookie
func ClearSession(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
