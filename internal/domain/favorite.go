package domain

import "time"

// Favorite Model, a (user, restaurant) membership row
type Favorite struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"not null;uniqueIndex:idx_favorite_pair,priority:1"`
	RestaurantID uint `gorm:"not null;uniqueIndex:idx_favorite_pair,priority:2;index"`
	CreatedAt    time.Time
	Restaurant   Restaurant `gorm:"constraint:OnDelete:CASCADE;"`
	User         User       `gorm:"constraint:OnDelete:CASCADE;"`
}
