package domain

import "time" // Timestamps

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey"`                    // Primary key
	Username     string    `gorm:"size:50;uniqueIndex;not null"`  // Unique username
	Email        string    `gorm:"size:255;uniqueIndex;not null"` // Unique email, stored lower-cased
	PasswordHash string    `gorm:"not null"`                      // bcrypt hash
	Role         Role      `gorm:"size:10;not null;default:user"` // Role: user or admin
	CreatedAt    time.Time // Creation timestamp
	UpdatedAt    time.Time // Update timestamp
}

// IsAdmin reports whether the user administers restaurants
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
