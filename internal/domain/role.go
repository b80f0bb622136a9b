package domain

import "fmt"

// Role is the closed set of session classifications
type Role string

const (
	RoleUser  Role = "user"  // Regular customer
	RoleAdmin Role = "admin" // Restaurant administrator
)

// ParseRole maps a stored value onto a known role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanManageRestaurants reports whether the role may create, edit and delete restaurants
func (r Role) CanManageRestaurants() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	}
	return false
}

// CanReserve reports whether the role may place bookings and keep favorites
func (r Role) CanReserve() bool {
	switch r {
	case RoleUser:
		return true
	case RoleAdmin:
		return false
	}
	return false
}
