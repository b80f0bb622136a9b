package domain

import "time" // Timestamps

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

// StatusConfirmed is assigned to every stored booking
const StatusConfirmed BookingStatus = "confirmed"

// Booking Model
//
// A slot (restaurant, date, time) is held by at most one row; the composite
// unique index enforces it at write time.
type Booking struct {
	ID           uint          `gorm:"primaryKey"`                                                        // Primary key
	RestaurantID uint          `gorm:"not null;uniqueIndex:idx_booking_slot,priority:1"`                  // Foreign key to Restaurant
	UserID       uint          `gorm:"not null;index"`                                                    // Foreign key to User
	UserName     string        `gorm:"size:100;not null"`                                                 // Name the table is held under
	Email        string        `gorm:"size:255"`                                                          // Contact email
	Phone        string        `gorm:"size:30"`                                                           // Contact phone
	PartySize    int           `gorm:"not null"`                                                          // Guests, 1 to 20
	BookingDate  string        `gorm:"type:varchar(10);not null;uniqueIndex:idx_booking_slot,priority:2"` // YYYY-MM-DD
	BookingTime  string        `gorm:"type:varchar(5);not null;uniqueIndex:idx_booking_slot,priority:3"`  // HH:MM, one of the hourly slots
	Status       BookingStatus `gorm:"size:20;not null;default:confirmed"`                                // Booking status
	CreatedAt    time.Time     // Creation timestamp
	UpdatedAt    time.Time     // Update timestamp
	Restaurant   Restaurant    `gorm:"constraint:OnDelete:CASCADE;"` // Owning restaurant
	User         User          `gorm:"constraint:OnDelete:CASCADE;"` // Booking user
}
