package api

import (
	"html/template"                          // Parsed page templates
	"net/http"                               // Handler type
	"restaurant_booking/internal/middleware" // Session, authorization, throttling

	"github.com/gin-gonic/gin" // Gin web framework
)

// RouterOptions configures NewRouter
type RouterOptions struct {
	Templates      *template.Template      // Page templates
	LoginLimiter   *middleware.RateLimiter // Throttles login and signup posts
	MaxUploadBytes int64                   // Body limit for every request
	TrustedProxies []string                // Proxies whose forwarding headers are trusted
	Logger         bool                    // Attach gin's request logger
}

// NewRouter builds the gin engine with every route and wraps it for form method override
func NewRouter(h *Handler, opts RouterOptions) (http.Handler, error) {
	r := gin.New()
	if opts.Logger {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(opts.Templates)
	r.Static("/uploads", h.Images.Dir) // Uploaded images
	r.Use(middleware.Session(h.Secret, h.Store))
	r.NoRoute(h.NoRoute)

	var throttle gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if opts.LoginLimiter != nil {
		throttle = opts.LoginLimiter.Middleware()
	}

	// Public routes
	r.GET("/", h.ListRestaurants)
	r.GET("/restaurants/:id", h.ShowRestaurant)
	r.GET("/signup", h.SignupPage)
	r.POST("/users", throttle, h.CreateUser)
	r.GET("/login", h.LoginPage)
	r.POST("/login", throttle, h.Login)
	r.POST("/logout", h.Logout)

	// Admin routes
	admin := r.Group("", middleware.RequireLogin(), middleware.RequireAdmin())
	admin.GET("/new", h.NewRestaurant)
	admin.POST("/restaurants", h.CreateRestaurant)
	admin.GET("/restaurants/:id/edit", h.EditRestaurant)
	admin.PUT("/restaurants/:id/edit", h.UpdateRestaurant)
	admin.DELETE("/restaurants/:id/edit", h.DeleteRestaurant)

	// Customer routes
	customer := r.Group("", middleware.RequireLogin(), middleware.RequireCustomer())
	customer.GET("/restaurants/:id/reservations/new", h.NewBooking)
	customer.POST("/restaurants/:id/reservations", h.CreateBooking)
	customer.GET("/reservations", h.ListBookings)
	customer.GET("/reservations/:id/edit", h.EditBooking)
	customer.PUT("/reservations/:id", h.UpdateBooking)
	customer.DELETE("/reservations/:id", h.DeleteBooking)
	customer.POST("/restaurants/:id/favorite", h.ToggleFavorite)
	customer.GET("/favorite", h.ListFavorites)

	return middleware.MethodOverride(opts.MaxUploadBytes, r), nil
}
