// Package testdb opens an in-memory SQLite database with the real migrations applied.
package testdb

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mini-blog/migrations"
	"mini-blog/pkg/common/migration"
)

// Open returns a fresh, migrated database that is closed when t finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// Each connection to :memory: is its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	fsys, err := migrations.For("sqlite")
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if _, err := migration.Up(context.Background(), db, fsys); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
