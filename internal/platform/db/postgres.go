package db

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fatflowers/hms-payment/internal/models"
	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
	gormzap "github.com/fatflowers/hms-payment/pkg/gormlog"
)

// GormConfig is shared by the postgres pool and the in-memory test databases.
func GormConfig(l *zap.SugaredLogger) *gorm.Config {
	return &gorm.Config{
		Logger:         gormzap.New(l, gormlogger.Warn),
		TranslateError: true,
	}
}

func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), GormConfig(l))
	if err != nil {
		l.Errorw("db_connect_failed", "error", err)
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := ConfigurePool(db, cfg.Database); err != nil {
		return nil, err
	}
	l.Infow("db_connected", "max_open_conns", cfg.Database.MaxOpenConns)
	return db, nil
}

// ConfigurePool bounds the connection pool every ledger transaction draws from.
func ConfigurePool(db *gorm.DB, c cfgpkg.DBConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)
	return nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)

// AutoMigrate runs GORM migrations on startup when database.auto_migrate is set.
// Production schemas are owned by the goose migrations (`migrate` command).
func AutoMigrate(l *zap.SugaredLogger, cfg *cfgpkg.Config, db *gorm.DB) error {
	if !cfg.Database.AutoMigrate {
		return nil
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		l.Errorw("automigrate_failed", "error", err)
		return err
	}
	l.Infow("automigrate_completed")
	return nil
}

func Models() []any {
	return []any{&models.Payment{}, &models.CollaboratorCallLog{}}
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing postgres connection pool")
			return sqlDB.Close()
		},
	})
}
