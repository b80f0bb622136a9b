package store

import (
	"context"
	"fmt"
	"strings"

	"restaurant_booking/internal/domain"
)

// CreateUser inserts a user with a lower-cased email and the default role
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Role = domain.RoleUser
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindUser loads a user by id
func (s *Store) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindUserByLogin matches a username exactly or an email case-insensitively
func (s *Store) FindUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	login = strings.TrimSpace(login)
	var u domain.User
	if err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
