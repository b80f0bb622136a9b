package store

import (
	"context"
	"fmt"

	"restaurant_booking/internal/domain"

	"gorm.io/gorm/clause"
)

// SlotTaken reports whether a booking other than excludeID holds the slot.
// Pass zero for a new booking.
func (s *Store) SlotTaken(ctx context.Context, restaurantID uint, date, slot string, excludeID uint) (bool, error) {
	q := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("restaurant_id = ? AND booking_date = ? AND booking_time = ?", restaurantID, date, slot)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("slot lookup: %w", err)
	}
	return count > 0, nil
}

// CreateBooking inserts a confirmed booking. A concurrent booking of the same
// slot surfaces as ErrSlotTaken.
func (s *Store) CreateBooking(ctx context.Context, b *domain.Booking) error {
	b.Status = domain.StatusConfirmed
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		if isDuplicate(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// UpdateBooking saves the editable fields of an existing booking
func (s *Store) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	res := s.db.WithContext(ctx).Model(&domain.Booking{ID: b.ID}).
		Select("UserName", "Email", "Phone", "PartySize", "BookingDate", "BookingTime").
		Updates(b)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return ErrSlotTaken
		}
		return fmt.Errorf("update booking: %w", res.Error)
	}
	return nil
}

// FindBooking loads a booking with its restaurant
func (s *Store) FindBooking(ctx context.Context, id uint) (*domain.Booking, error) {
	var b domain.Booking
	if err := s.db.WithContext(ctx).Preload("Restaurant").First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListUserBookings returns the user's bookings in date order
func (s *Store) ListUserBookings(ctx context.Context, userID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := s.db.WithContext(ctx).Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("booking_date, booking_time").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// DeleteBooking cancels a booking and frees its slot
func (s *Store) DeleteBooking(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
