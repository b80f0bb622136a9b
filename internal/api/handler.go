package api

import (
	"errors"                                 // Error inspection
	"net/http"                               // HTTP status codes
	"restaurant_booking/internal/domain"     // Importing domain models
	"restaurant_booking/internal/middleware" // Request-scoped session user
	"restaurant_booking/internal/storage"    // Uploaded images
	"restaurant_booking/internal/store"      // Persistence
	"restaurant_booking/internal/utils"      // Cache interface
	"strconv"                                // ID parsing
	"time"                                   // Clock and lifetimes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Handler carries the dependencies shared by every route
type Handler struct {
	Store         *store.Store        // Database operations
	Cache         utils.Cache         // Restaurant page cache
	Images        *storage.ImageStore // Upload storage
	Secret        string              // Session signing key
	SessionTTL    time.Duration       // Session cookie lifetime
	CacheTTL      time.Duration       // Cached restaurant lifetime
	SecureCookies bool                // Mark cookies Secure (production)
	Location      *time.Location      // Zone deciding the current date
	Clock         func() time.Time    // Current time, replaceable in tests
}

// today returns the current calendar day in the configured zone
func (h *Handler) today() time.Time {
	now := time.Now
	if h.Clock != nil {
		now = h.Clock
	}
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// render executes a page template with the session user added
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = middleware.CurrentUser(c) // Header needs the session user
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = flashMessage(c) // Message from a previous redirect
	}
	c.HTML(status, name, data)
}

// notFound renders the 404 page
func (h *Handler) notFound(c *gin.Context, message string) {
	h.render(c, http.StatusNotFound, "error.tmpl", gin.H{"Status": http.StatusNotFound, "Message": message})
}

// NoRoute answers unknown paths
func (h *Handler) NoRoute(c *gin.Context) {
	h.notFound(c, "page not found")
}

// mustUser returns the session user; routes using it sit behind RequireLogin
func mustUser(c *gin.Context) *domain.User {
	return middleware.CurrentUser(c)
}

// bodyTooLarge reports whether reading the request hit the body size cap
func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// paramID parses a positive numeric path parameter
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

var flashes = map[string]string{
	"save_failed":    "Something went wrong while saving. Please try again.",
	"delete_failed":  "The restaurant could not be deleted. Please try again.",
	"booking_failed": "The booking could not be saved. Please try again.",
	"signup_failed":  "Your account could not be created. Please try again.",
	"login_failed":   "Your sign-in could not be processed. Please try again.",
	"created":        "Restaurant created.",
	"updated":        "Restaurant updated.",
	"deleted":        "Restaurant deleted.",
	"booked":         "Your table is booked.",
	"booking_saved":  "Your booking was updated.",
	"cancelled":      "Your booking was cancelled.",
}

// flashMessage maps the error or notice query flag to a message
func flashMessage(c *gin.Context) string {
	if v := c.Query("error"); v != "" {
		return flashes[v]
	}
	return flashes[c.Query("notice")]
}
