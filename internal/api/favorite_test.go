package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"restaurant_booking/internal/api"
	"restaurant_booking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFavorite(t *testing.T, body []byte) api.FavoriteResponse {
	t.Helper()
	var resp api.FavoriteResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestToggleFavorite(t *testing.T) {
	env := newEnv(t)
	r := env.createRestaurant("Gogi House", "Seoul")
	path := restaurantPath(r) + "/favorite"

	w := env.postJSON(path, env.user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.FavoriteResponse{Success: true, Action: "added", Message: "added to favorites"}, decodeFavorite(t, w.Body.Bytes()))
	assert.Equal(t, int64(1), env.count(&domain.Favorite{}))
	assert.Contains(t, env.get(restaurantPath(r), env.user).Body.String(), "Remove from favorites")

	w = env.postJSON(path, env.user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.FavoriteResponse{Success: true, Action: "removed", Message: "removed from favorites"}, decodeFavorite(t, w.Body.Bytes()))
	assert.Zero(t, env.count(&domain.Favorite{}))
}

func TestToggleFavoriteIsPerUser(t *testing.T) {
	env := newEnv(t)
	r := env.createRestaurant("Gogi House", "Seoul")
	path := restaurantPath(r) + "/favorite"

	assert.Equal(t, "added", decodeFavorite(t, env.postJSON(path, env.user).Body.Bytes()).Action)
	assert.Equal(t, "added", decodeFavorite(t, env.postJSON(path, env.other).Body.Bytes()).Action)
	assert.Equal(t, int64(2), env.count(&domain.Favorite{}))
}

func TestToggleFavoriteRejections(t *testing.T) {
	env := newEnv(t)
	r := env.createRestaurant("Gogi House", "Seoul")
	path := restaurantPath(r) + "/favorite"

	w := env.postJSON(path, env.admin)
	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeFavorite(t, w.Body.Bytes())
	assert.False(t, resp.Success)
	assert.Equal(t, "only customers can do this", resp.Message)

	w = env.postJSON(path, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, decodeFavorite(t, w.Body.Bytes()).Success)

	w = env.postJSON("/restaurants/999/favorite", env.user)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "restaurant not found", decodeFavorite(t, w.Body.Bytes()).Message)

	assert.Zero(t, env.count(&domain.Favorite{}))
}

func TestListFavorites(t *testing.T) {
	env := newEnv(t)
	liked := env.createRestaurant("Gogi House", "Seoul")
	env.createRestaurant("Sea Breeze", "Busan")
	require.Equal(t, http.StatusOK, env.postJSON(restaurantPath(liked)+"/favorite", env.user).Code)

	w := env.get("/favorite", env.user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gogi House")
	assert.NotContains(t, w.Body.String(), "Sea Breeze")

	w = env.get("/favorite", env.other)
	assert.Contains(t, w.Body.String(), "No favorites yet.")
}
