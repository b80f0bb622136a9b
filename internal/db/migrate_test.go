package db

import (
	"testing"

	"restaurant_booking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

func TestMigrateIsIdempotent(t *testing.T) {
	gdb := openMemory(t)

	require.NoError(t, Migrate(gdb))
	require.NoError(t, Migrate(gdb))

	for _, model := range []any{&domain.Restaurant{}, &domain.User{}, &domain.Booking{}, &domain.Favorite{}} {
		assert.True(t, gdb.Migrator().HasTable(model))
	}
	assert.True(t, gdb.Migrator().HasIndex(&domain.Booking{}, "idx_booking_slot"))
	assert.True(t, gdb.Migrator().HasIndex(&domain.Favorite{}, "idx_favorite_pair"))
}

func TestMigrateAddsRoleColumn(t *testing.T) {
	gdb := openMemory(t)
	// users table from before roles existed
	require.NoError(t, gdb.Exec(`CREATE TABLE users (
		id integer PRIMARY KEY AUTOINCREMENT,
		username text NOT NULL UNIQUE,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		created_at datetime,
		updated_at datetime
	)`).Error)
	require.NoError(t, gdb.Exec(`INSERT INTO users (username, email, password_hash) VALUES ('old', 'old@example.com', 'x')`).Error)

	require.NoError(t, Migrate(gdb))

	assert.True(t, gdb.Migrator().HasColumn(&domain.User{}, "Role"))
	var u domain.User
	require.NoError(t, gdb.Where("username = ?", "old").First(&u).Error)
	assert.Equal(t, domain.RoleUser, u.Role)
}

func TestPromoteAdmins(t *testing.T) {
	gdb := openMemory(t)
	require.NoError(t, Migrate(gdb))
	require.NoError(t, gdb.Create(&domain.User{Username: "alice", Email: "a@example.com", PasswordHash: "x", Role: domain.RoleUser}).Error)
	require.NoError(t, gdb.Create(&domain.User{Username: "bob", Email: "b@example.com", PasswordHash: "x", Role: domain.RoleUser}).Error)
	require.NoError(t, gdb.Create(&domain.User{Username: "Carol", Email: "c@example.com", PasswordHash: "x", Role: domain.RoleUser}).Error)

	n, err := PromoteAdmins(gdb, []string{"alice", "nobody", "CAROL"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var carol domain.User
	require.NoError(t, gdb.Where("username = ?", "Carol").First(&carol).Error)
	assert.Equal(t, domain.RoleAdmin, carol.Role)

	var alice, bob domain.User
	require.NoError(t, gdb.Where("username = ?", "alice").First(&alice).Error)
	require.NoError(t, gdb.Where("username = ?", "bob").First(&bob).Error)
	assert.Equal(t, domain.RoleAdmin, alice.Role)
	assert.Equal(t, domain.RoleUser, bob.Role)

	n, err = PromoteAdmins(gdb, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
