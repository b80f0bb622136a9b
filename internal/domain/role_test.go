package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleAdmin.CanManageRestaurants())
	assert.False(t, RoleAdmin.CanReserve())
	assert.True(t, RoleUser.CanReserve())
	assert.False(t, RoleUser.CanManageRestaurants())
	assert.False(t, Role("owner").CanReserve())
	assert.False(t, Role("owner").CanManageRestaurants())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}

func TestUserIsAdmin(t *testing.T) {
	var anon *User
	assert.False(t, anon.IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}
