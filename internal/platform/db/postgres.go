package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fatflowers/wellbeing/internal/models"
	gormzap "github.com/fatflowers/wellbeing/pkg/gormlog"
)

// NewPostgres opens a GORM connection to postgres with zap-backed query logging.
func NewPostgres(l *zap.SugaredLogger, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormzap.New(l)})
	if err != nil {
		l.Errorf("failed to connect database: %v", err)
		return nil, err
	}
	l.Infow("connected to postgres via DSN")
	return db, nil
}

// AutoMigrate creates or updates the usage and ledger tables.
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UsageRecord{},
		&models.FeatherGrant{},
		&models.UsageLog{},
	); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// Close closes the underlying *sql.DB.
func Close(l *zap.SugaredLogger, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		l.Warnw("gorm: get sql.DB failed", "err", err)
		return nil
	}
	l.Infow("closing postgres connection pool")
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}
