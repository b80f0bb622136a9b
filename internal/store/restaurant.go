package store

import (
	"context"
	"fmt"

	"restaurant_booking/internal/domain"

	"gorm.io/gorm"
)

// ListRestaurants returns restaurants newest first, optionally for one city
func (s *Store) ListRestaurants(ctx context.Context, city string) ([]domain.Restaurant, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if city != "" {
		q = q.Where("city = ?", city)
	}
	var restaurants []domain.Restaurant
	if err := q.Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

// Cities returns the distinct non-empty cities in alphabetical order
func (s *Store) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	if err := s.db.WithContext(ctx).Model(&domain.Restaurant{}).
		Where("city <> ''").
		Distinct().Order("city").
		Pluck("city", &cities).Error; err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

// FindRestaurant loads a restaurant by id
func (s *Store) FindRestaurant(ctx context.Context, id uint) (*domain.Restaurant, error) {
	var r domain.Restaurant
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

// CreateRestaurant inserts a restaurant
func (s *Store) CreateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

// UpdateRestaurant saves every editable column, bumping updated_at
func (s *Store) UpdateRestaurant(ctx context.Context, r *domain.Restaurant) error {
	res := s.db.WithContext(ctx).Model(&domain.Restaurant{ID: r.ID}).
		Select("Name", "Description", "Address", "City", "Image").
		Updates(r)
	if res.Error != nil {
		return fmt.Errorf("update restaurant: %w", res.Error)
	}
	return nil
}

// DeleteRestaurant removes a restaurant with its bookings and favorites
func (s *Store) DeleteRestaurant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		res := tx.Delete(&domain.Restaurant{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete restaurant: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
