package api

import (
	"errors"                            // Error comparison
	"net/http"                          // HTTP status codes
	"restaurant_booking/internal/store" // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// FavoriteResponse is the JSON body of a toggle
type FavoriteResponse struct {
	Success bool   `json:"success"`          // Whether the toggle happened
	Action  string `json:"action,omitempty"` // "added" or "removed"
	Message string `json:"message"`          // Human readable outcome
}

// ToggleFavorite adds or removes the restaurant from the user's favorites
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, FavoriteResponse{Message: "restaurant not found"})
		return
	}
	user := mustUser(c)
	action, err := h.Store.ToggleFavorite(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, FavoriteResponse{Message: "restaurant not found"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":       user.ID,     // Favoriting user
			"restaurant_id": id,          // Restaurant ID
			"error":         err.Error(), // Error message
		}).Error("Favorite toggle failed")
		c.JSON(http.StatusInternalServerError, FavoriteResponse{Message: "favorite could not be updated"})
		return
	}
	message := "added to favorites"
	if action == store.FavoriteRemoved {
		message = "removed from favorites"
	}
	c.JSON(http.StatusOK, FavoriteResponse{Success: true, Action: string(action), Message: message})
}

// ListFavorites renders the user's favorite restaurants
func (h *Handler) ListFavorites(c *gin.Context) {
	user := mustUser(c)
	restaurants, err := h.Store.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Failed to list favorites")
		h.render(c, http.StatusInternalServerError, "error.tmpl", gin.H{"Status": http.StatusInternalServerError, "Message": "favorites are unavailable"})
		return
	}
	h.render(c, http.StatusOK, "favorites.tmpl", gin.H{"Title": "Favorites", "Restaurants": restaurants})
}
