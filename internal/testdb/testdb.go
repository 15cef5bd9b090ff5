// Package testdb opens throwaway SQLite databases for package tests.
package testdb

import (
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/pkg/database"
)

// New returns a migrated SQLite database stored under t.TempDir(). Every
// transaction begins IMMEDIATE and waits on the busy timeout, so concurrent
// writers queue instead of failing with "database is locked".
func New(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "foodtruck.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate&_journal_mode=WAL", path)

	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("testdb: open: %v", err)
	}

	if err := db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.OrderCounter{}); err != nil {
		t.Fatalf("testdb: migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
