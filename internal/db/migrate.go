package db

import (
	"fmt"                                // Error wrapping
	"restaurant_booking/internal/domain" // Importing domain models
	"strings"                            // Case folding

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open connects to MySQL with unique-violation translation enabled
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate creates missing tables, indexes and columns. It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	// Databases created before roles existed get the column added in place
	if db.Migrator().HasTable(&domain.User{}) && !db.Migrator().HasColumn(&domain.User{}, "Role") {
		if err := db.Migrator().AddColumn(&domain.User{}, "Role"); err != nil {
			return fmt.Errorf("add role column: %w", err)
		}
		logrus.Info("Added role column to users")
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.Restaurant{}, &domain.User{}, &domain.Booking{}, &domain.Favorite{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// PromoteAdmins grants the admin role to the named users. Unknown names are skipped.
func PromoteAdmins(db *gorm.DB, usernames []string) (int64, error) {
	if len(usernames) == 0 {
		return 0, nil
	}
	names := make([]string, len(usernames))
	for i, u := range usernames {
		names[i] = strings.ToLower(u) // Usernames match regardless of case
	}
	res := db.Model(&domain.User{}).
		Where("LOWER(username) IN ? AND role <> ?", names, domain.RoleAdmin).
		Update("role", domain.RoleAdmin)
	if res.Error != nil {
		return 0, fmt.Errorf("promote admins: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		logrus.WithField("count", res.RowsAffected).Info("Promoted users to admin")
	}
	return res.RowsAffected, nil
}
