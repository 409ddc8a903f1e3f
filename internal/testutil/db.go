// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-pos/internal/models"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// SeedSalon inserts a salon in the given timezone.
func SeedSalon(t testing.TB, db *gorm.DB, tz string) *models.Salon {
	t.Helper()

	s := &models.Salon{
		Name:     "Test Salon",
		Slug:     "test-" + uuid.NewString()[:8],
		Timezone: tz,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed salon: %v", err)
	}
	return s
}
