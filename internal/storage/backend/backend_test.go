package backend

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fatflowers/wellbeing/internal/storage/redis"
	"github.com/fatflowers/wellbeing/internal/storage/sqlite"
	"github.com/fatflowers/wellbeing/pkg/config"
)

func TestOpen_SelectsDriver(t *testing.T) {
	log := zaptest.NewLogger(t).Sugar()

	cfg := &config.Config{Storage: config.StorageConfig{
		Driver: config.StorageDriverSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "w.db")},
	}}
	s, err := Open(cfg, log)
	require.NoError(t, err)
	require.IsType(t, &sqlite.Store{}, s)
	require.NoError(t, s.Close())

	mr := miniredis.RunT(t)
	cfg.Storage = config.StorageConfig{
		Driver: config.StorageDriverRedis,
		Redis:  config.RedisConfig{Addr: mr.Addr()},
	}
	s, err = Open(cfg, log)
	require.NoError(t, err)
	require.IsType(t, &redis.Store{}, s)
	require.NoError(t, s.Close())

	cfg.Storage.Driver = "mongo"
	_, err = Open(cfg, log)
	require.Error(t, err)
}
