package store

import (
	"context"
	"fmt"

	"restaurant_booking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteAction is the outcome of a toggle
type FavoriteAction string

const (
	FavoriteAdded   FavoriteAction = "added"
	FavoriteRemoved FavoriteAction = "removed"
)

// ToggleFavorite flips the (user, restaurant) membership in one transaction.
// The delete decides the outcome; the insert ignores a concurrent duplicate so
// the pair never exists twice.
func (s *Store) ToggleFavorite(ctx context.Context, userID, restaurantID uint) (FavoriteAction, error) {
	var action FavoriteAction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Restaurant{}).Where("id = ?", restaurantID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		res := tx.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).Delete(&domain.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			action = FavoriteRemoved
			return nil
		}

		fav := domain.Favorite{UserID: userID, RestaurantID: restaurantID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&fav).Error; err != nil {
			return err
		}
		action = FavoriteAdded
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("toggle favorite: %w", err)
	}
	return action, nil
}

// IsFavorite reports whether the user has favorited the restaurant
func (s *Store) IsFavorite(ctx context.Context, userID, restaurantID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("favorite lookup: %w", err)
	}
	return count > 0, nil
}

// ListFavorites returns the user's favorite restaurants, most recent first
func (s *Store) ListFavorites(ctx context.Context, userID uint) ([]domain.Restaurant, error) {
	var restaurants []domain.Restaurant
	if err := s.db.WithContext(ctx).
		Select("restaurants.*").
		Joins("JOIN favorites ON favorites.restaurant_id = restaurants.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC, favorites.id DESC").
		Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return restaurants, nil
}
