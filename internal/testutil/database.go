// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"testing"

	"rentalog/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database with all models migrated.
// Each call gets its own named database so parallel packages never share rows.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	// A single connection keeps shared-cache SQLite free of table locks.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.All...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// FailCreatesOn makes every INSERT into table fail with err until the test ends.
func FailCreatesOn(t *testing.T, db *gorm.DB, table string, err error) {
	t.Helper()

	name := "testutil:fail_" + table
	cb := db.Callback().Create().Before("gorm:create")
	if regErr := cb.Register(name, func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == table {
			_ = tx.AddError(err)
		}
	}); regErr != nil {
		t.Fatalf("failed to register fault callback: %v", regErr)
	}
	t.Cleanup(func() {
		_ = db.Callback().Create().Remove(name)
	})
}

// InsertBeforeCreate inserts row into table just before the next INSERT into
// that table runs, inside the same transaction. It simulates a concurrent
// writer that slips in after a service's existence check.
func InsertBeforeCreate(t *testing.T, db *gorm.DB, table string, row any) {
	t.Helper()

	name := "testutil:insert_before_" + table
	done := false
	cb := db.Callback().Create().Before("gorm:create")
	if regErr := cb.Register(name, func(tx *gorm.DB) {
		if done || tx.Statement.Schema == nil || tx.Statement.Schema.Table != table {
			return
		}
		done = true
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(row).Error; err != nil {
			_ = tx.AddError(err)
		}
	}); regErr != nil {
		t.Fatalf("failed to register insert callback: %v", regErr)
	}
	t.Cleanup(func() {
		_ = db.Callback().Create().Remove(name)
	})
}
