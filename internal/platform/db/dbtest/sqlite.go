// Package dbtest opens throwaway ledger databases for tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fatflowers/hms-payment/internal/platform/db"
)

// NewSQLite returns an in-memory, auto-migrated database closed at test cleanup.
// It holds one connection so every statement sees the same memory database.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig(zaptest.NewLogger(t).Sugar()))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(db.Models()...))
	return gdb
}
