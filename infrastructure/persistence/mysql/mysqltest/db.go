// Package mysqltest opens migrated in-memory databases for service and
// controller tests.
package mysqltest

import (
	"context"
	"testing"
	"time"

	"petcare/domain/user"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// NewDB returns a fresh migrated SQLite database closed with the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := mysql.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := mysql.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewUnitOfWorkFactory retries without real backoff delays.
func NewUnitOfWorkFactory(db *gorm.DB) *mysql.UnitOfWorkFactory {
	cfg := retry.DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.JitterEnabled = false
	return mysql.NewUnitOfWorkFactory(db, cfg)
}

// SeedUser stores an active user with password "secret123" and the given
// wallet balance in fen.
func SeedUser(t testing.TB, db *gorm.DB, username string, balance int64) *user.User {
	t.Helper()
	hash, err := user.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := user.NewUser(username, hash, "")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	users := mysql.NewUserRepository(db)
	ctx := context.Background()
	if err := users.Save(ctx, u); err != nil {
		t.Fatalf("save user: %v", err)
	}
	if balance != 0 {
		if _, err := users.AdjustBalance(ctx, u.ID(), balance); err != nil {
			t.Fatalf("balance: %v", err)
		}
	}
	return u
}

// SeedAdmin stores an active admin with password "secret123".
func SeedAdmin(t testing.TB, db *gorm.DB, username string, super bool) *user.Admin {
	t.Helper()
	a, err := user.NewAdmin(username, "secret123", "", super)
	if err != nil {
		t.Fatalf("new admin: %v", err)
	}
	if err := mysql.NewAdminRepository(db).Save(context.Background(), a); err != nil {
		t.Fatalf("save admin: %v", err)
	}
	return a
}
