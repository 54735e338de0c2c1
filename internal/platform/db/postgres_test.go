package db

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		body, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		require.Contains(t, string(body), "-- +goose Up", f)
		require.Contains(t, string(body), "-- +goose Down", f)
	}

	body, err := fs.ReadFile(migrationsFS, "migrations/00001_create_payments.sql")
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "idx_payments_idempotency"))
	require.True(t, strings.Contains(string(body), "chk_payments_amount_sign"))
}

func TestConfigurePoolAndAutoMigrate(t *testing.T) {
	l := zap.NewNop().Sugar()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(l))
	require.NoError(t, err)

	require.NoError(t, ConfigurePool(gdb, cfgpkg.DBConfig{MaxOpenConns: 1, MaxIdleConns: 1, ConnMaxIdleTime: time.Minute}))
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	require.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	cfg := &cfgpkg.Config{Database: cfgpkg.DBConfig{AutoMigrate: true}}
	require.NoError(t, AutoMigrate(l, cfg, gdb))
	require.True(t, gdb.Migrator().HasTable("payments"))
	require.True(t, gdb.Migrator().HasIndex("payments", "idx_payments_idempotency"))
	require.True(t, gdb.Migrator().HasTable("collaborator_call_log"))
}

func TestAutoMigrate_Disabled(t *testing.T) {
	l := zap.NewNop().Sugar()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(l))
	require.NoError(t, err)
	require.NoError(t, ConfigurePool(gdb, cfgpkg.DBConfig{MaxOpenConns: 1}))

	require.NoError(t, AutoMigrate(l, &cfgpkg.Config{}, gdb))
	require.False(t, gdb.Migrator().HasTable("payments"))
}

func TestNewDB_EmptyDSN(t *testing.T) {
	_, err := NewDB(zap.NewNop().Sugar(), &cfgpkg.Config{})
	require.ErrorIs(t, err, gorm.ErrInvalidDB)
}
