package domain

import "time" // Timestamps

// Restaurant Model
type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`          // Primary key
	Name        string    `gorm:"size:100;not null" json:"name"` // Display name, required
	Description string    `gorm:"type:text" json:"description"`  // Free text
	Address     string    `gorm:"size:255" json:"address"`       // Street address
	City        string    `gorm:"size:100;index" json:"city"`    // City, used for filtering
	Image       string    `gorm:"size:255" json:"image"`         // Stored upload filename, empty when none
	CreatedAt   time.Time `json:"created_at"`                    // Creation timestamp
	UpdatedAt   time.Time `json:"updated_at"`                    // Bumped on every edit
}
