// Package store wraps the database operations that carry invariants of their own.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the addressed row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrSlotTaken is returned when another booking holds the same slot
	ErrSlotTaken = errors.New("slot already booked")
	// ErrDuplicateUser is returned when the username or email is in use
	ErrDuplicateUser = errors.New("username or email already in use")
)

// Store exposes the application's persistence operations
type Store struct {
	db *gorm.DB
}

// New wraps a connected database
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// isDuplicate recognises unique violations whether or not the dialect
// translated them to gorm.ErrDuplicatedKey
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate entry")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
