// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/internal/storage/gormstore"
	"github.com/fatflowers/wellbeing/internal/storage/redis"
	"github.com/fatflowers/wellbeing/internal/storage/sqlite"
	"github.com/fatflowers/wellbeing/pkg/config"
)

// Open returns the backend named by cfg.Storage.Driver.
func Open(cfg *config.Config, l *zap.SugaredLogger) (storage.Store, error) {
	var (
		s   storage.Store
		err error
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite, "":
		s, err = sqlite.Open(cfg.Storage.SQLite.Path, l)
	case config.StorageDriverPostgres:
		s, err = gormstore.Open(cfg.Storage.Postgres.DSN, l)
	case config.StorageDriverRedis:
		s, err = redis.Open(cfg.Storage.Redis, l)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newStore(lc fx.Lifecycle, cfg *config.Config, l *zap.SugaredLogger) (storage.Store, error) {
	s, err := Open(cfg, l)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Infow("closing storage", "driver", cfg.Storage.Driver)
			return s.Close()
		},
	})
	return s, nil
}

var Module = fx.Options(
	fx.Provide(newStore),
)
