package api

import (
	"context"                                // Context for cache operations
	"errors"                                 // Error comparison
	"net/http"                               // HTTP status codes
	"restaurant_booking/internal/domain"     // Importing domain models
	"restaurant_booking/internal/middleware" // Request-scoped session user
	"restaurant_booking/internal/storage"    // Uploaded images
	"restaurant_booking/internal/store"      // Persistence
	"restaurant_booking/internal/utils"      // Cache keys
	"strconv"                                // ID formatting
	"strings"                                // String manipulation
	"unicode/utf8"                           // Name length

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RestaurantForm is the create/edit input; the image arrives as a multipart file
type RestaurantForm struct {
	Name        string `form:"name"`        // Required
	Description string `form:"description"` // Optional
	Address     string `form:"address"`     // Optional
	City        string `form:"city"`        // Optional
}

// apply copies the trimmed form values onto r
func (f RestaurantForm) apply(r *domain.Restaurant) {
	r.Name = strings.TrimSpace(f.Name)
	r.Description = strings.TrimSpace(f.Description)
	r.Address = strings.TrimSpace(f.Address)
	r.City = strings.TrimSpace(f.City)
}

const msgUploadTooLarge = "the image is too large"

func validateRestaurant(r *domain.Restaurant) map[string]string {
	errs := map[string]string{}
	if r.Name == "" {
		errs["name"] = "name is required"
	} else if utf8.RuneCountInString(r.Name) > 100 {
		errs["name"] = "name must be at most 100 characters"
	}
	return errs
}

// ListRestaurants renders the public listing, optionally filtered by city
func (h *Handler) ListRestaurants(c *gin.Context) {
	ctx := c.Request.Context()
	city := strings.TrimSpace(c.Query("city"))
	var restaurants []domain.Restaurant
	cached := false
	// Only the unfiltered listing is cached
	if city == "" {
		cached = h.cacheGet(ctx, utils.RestaurantListKey, &restaurants)
	}
	if !cached {
		var err error
		restaurants, err = h.Store.ListRestaurants(ctx, city)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list restaurants")
			h.render(c, http.StatusInternalServerError, "error.tmpl", gin.H{"Status": http.StatusInternalServerError, "Message": "restaurants are unavailable"})
			return
		}
		if city == "" {
			h.cacheSet(ctx, utils.RestaurantListKey, restaurants) // Cache for future requests
		}
	}
	cities, err := h.Store.Cities(ctx)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to list cities")
	}
	h.render(c, http.StatusOK, "index.tmpl", gin.H{
		"Restaurants": restaurants, // Restaurants to show
		"Cities":      cities,      // Filter options
		"City":        city,        // Selected filter
	})
}

// ShowRestaurant renders a restaurant's detail page
func (h *Handler) ShowRestaurant(c *gin.Context) {
	r, ok := h.loadRestaurant(c, true)
	if !ok {
		return
	}
	data := gin.H{"Title": r.Name, "Restaurant": r}
	if user := middleware.CurrentUser(c); user != nil && user.Role.CanReserve() {
		fav, err := h.Store.IsFavorite(c.Request.Context(), user.ID, r.ID) // Favorite lookup
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "restaurant_id": r.ID, "error": err.Error()}).Warn("Favorite lookup failed")
		}
		data["IsFavorite"] = fav
	}
	h.render(c, http.StatusOK, "restaurant.tmpl", data)
}

// NewRestaurant renders an empty restaurant form
func (h *Handler) NewRestaurant(c *gin.Context) {
	h.render(c, http.StatusOK, "restaurant_form.tmpl", gin.H{
		"Title":      "New restaurant",
		"Restaurant": &domain.Restaurant{},
		"Errors":     map[string]string{},
	})
}

// CreateRestaurant stores a new restaurant with an optional image
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var form RestaurantForm // Bind form to struct
	if err := c.ShouldBind(&form); err != nil {
		if bodyTooLarge(err) {
			h.renderRestaurantForm(c, &domain.Restaurant{}, false, map[string]string{"image": msgUploadTooLarge})
			return
		}
		c.Redirect(http.StatusSeeOther, "/?error=save_failed")
		return
	}
	r := &domain.Restaurant{}
	form.apply(r)
	errs := validateRestaurant(r)
	image, imageErr := h.saveUpload(c)
	if imageErr != "" {
		errs["image"] = imageErr
	}
	if len(errs) > 0 {
		_ = h.Images.Delete(image) // Nothing is kept from a rejected form
		h.renderRestaurantForm(c, r, false, errs)
		return
	}
	r.Image = image
	if err := h.Store.CreateRestaurant(c.Request.Context(), r); err != nil {
		h.discardUpload(image) // Do not orphan the upload
		logrus.WithFields(logrus.Fields{
			"name":  r.Name,      // Restaurant name
			"error": err.Error(), // Error message
		}).Error("Failed to create restaurant")
		c.Redirect(http.StatusSeeOther, "/?error=save_failed")
		return
	}
	logrus.WithFields(logrus.Fields{"restaurant_id": r.ID, "name": r.Name}).Info("Restaurant created")
	h.invalidate(c.Request.Context(), r.ID)
	c.Redirect(http.StatusSeeOther, "/restaurants/"+strconv.FormatUint(uint64(r.ID), 10)+"?notice=created")
}

// EditRestaurant renders the form for an existing restaurant
func (h *Handler) EditRestaurant(c *gin.Context) {
	r, ok := h.loadRestaurant(c, false)
	if !ok {
		return
	}
	h.renderRestaurantForm(c, r, true, map[string]string{})
}

// UpdateRestaurant saves edits and replaces the image when a new one is uploaded
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	r, ok := h.loadRestaurant(c, false)
	if !ok {
		return
	}
	var form RestaurantForm // Bind form to struct
	if err := c.ShouldBind(&form); err != nil {
		if bodyTooLarge(err) {
			// The body was never read in full, so the stored values are shown again
			h.renderRestaurantForm(c, r, true, map[string]string{"image": msgUploadTooLarge})
			return
		}
		c.Redirect(http.StatusSeeOther, "/restaurants/"+c.Param("id")+"?error=save_failed")
		return
	}
	form.apply(r)
	errs := validateRestaurant(r)
	image, imageErr := h.saveUpload(c)
	if imageErr != "" {
		errs["image"] = imageErr
	}
	if len(errs) > 0 {
		_ = h.Images.Delete(image)
		h.renderRestaurantForm(c, r, true, errs)
		return
	}
	oldImage := r.Image
	if image != "" {
		r.Image = image // Replace the stored image
	}
	if err := h.Store.UpdateRestaurant(c.Request.Context(), r); err != nil {
		h.discardUpload(image)
		logrus.WithFields(logrus.Fields{
			"restaurant_id": r.ID,        // Restaurant ID
			"error":         err.Error(), // Error message
		}).Error("Failed to update restaurant")
		c.Redirect(http.StatusSeeOther, "/restaurants/"+c.Param("id")+"?error=save_failed")
		return
	}
	if image != "" && oldImage != "" {
		h.discardUpload(oldImage) // Old file is gone once the new one is saved
	}
	logrus.WithField("restaurant_id", r.ID).Info("Restaurant updated")
	h.invalidate(c.Request.Context(), r.ID)
	c.Redirect(http.StatusSeeOther, "/restaurants/"+c.Param("id")+"?notice=updated")
}

// DeleteRestaurant removes a restaurant, its reservations, favorites and image
func (h *Handler) DeleteRestaurant(c *gin.Context) {
	r, ok := h.loadRestaurant(c, false)
	if !ok {
		return
	}
	if err := h.Store.DeleteRestaurant(c.Request.Context(), r.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(c, "restaurant not found")
			return
		}
		logrus.WithFields(logrus.Fields{
			"restaurant_id": r.ID,        // Restaurant ID
			"error":         err.Error(), // Error message
		}).Error("Failed to delete restaurant")
		c.Redirect(http.StatusSeeOther, "/?error=delete_failed")
		return
	}
	h.discardUpload(r.Image)
	logrus.WithField("restaurant_id", r.ID).Info("Restaurant deleted")
	h.invalidate(c.Request.Context(), r.ID)
	c.Redirect(http.StatusSeeOther, "/?notice=deleted")
}

// loadRestaurant resolves :id, rendering 404 itself when it does not exist
func (h *Handler) loadRestaurant(c *gin.Context, useCache bool) (*domain.Restaurant, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c, "restaurant not found")
		return nil, false
	}
	ctx := c.Request.Context()
	var r domain.Restaurant
	if useCache && h.cacheGet(ctx, utils.RestaurantKey(id), &r) {
		return &r, true
	}
	found, err := h.Store.FindRestaurant(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logrus.WithFields(logrus.Fields{"restaurant_id": id, "error": err.Error()}).Error("Failed to load restaurant")
		}
		h.notFound(c, "restaurant not found")
		return nil, false
	}
	if useCache {
		h.cacheSet(ctx, utils.RestaurantKey(id), found)
	}
	return found, true
}

func (h *Handler) renderRestaurantForm(c *gin.Context, r *domain.Restaurant, isEdit bool, errs map[string]string) {
	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
	}
	title := "New restaurant"
	if isEdit {
		title = "Edit restaurant"
	}
	h.render(c, status, "restaurant_form.tmpl", gin.H{
		"Title":      title,
		"Restaurant": r,
		"IsEdit":     isEdit,
		"Errors":     errs,
	})
}

// saveUpload stores the "image" part if present. It returns the stored name
// or a user-facing error message.
func (h *Handler) saveUpload(c *gin.Context) (string, string) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", "" // No image submitted
	}
	if bodyTooLarge(err) {
		return "", msgUploadTooLarge
	}
	if err != nil {
		return "", "the image could not be read"
	}
	if fh.Size == 0 && fh.Filename == "" {
		return "", ""
	}
	if !storage.AllowedExt(fh.Filename) {
		return "", storage.ErrUnsupportedType.Error()
	}
	name, err := h.Images.Save(fh)
	if err != nil {
		logrus.WithFields(logrus.Fields{"filename": fh.Filename, "error": err.Error()}).Error("Failed to store image")
		return "", "the image could not be saved"
	}
	return name, ""
}

func (h *Handler) discardUpload(name string) {
	if err := h.Images.Delete(name); err != nil {
		logrus.WithFields(logrus.Fields{"image": name, "error": err.Error()}).Warn("Failed to delete image")
	}
}

// cacheGet reads a cached value; cache failures fall back to the database
func (h *Handler) cacheGet(ctx context.Context, key string, dest any) bool {
	if h.Cache == nil {
		return false
	}
	found, err := h.Cache.Get(ctx, key, dest)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
		return false
	}
	return found
}

func (h *Handler) cacheSet(ctx context.Context, key string, value any) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Set(ctx, key, value, h.CacheTTL); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
}

// invalidate drops the cached listing and the restaurant's detail entry
func (h *Handler) invalidate(ctx context.Context, id uint) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Delete(ctx, utils.RestaurantListKey, utils.RestaurantKey(id)); err != nil {
		logrus.WithFields(logrus.Fields{"restaurant_id": id, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}
