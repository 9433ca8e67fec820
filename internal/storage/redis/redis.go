// Package redis stores usage records and feather ledgers in Redis.
package redis

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/pkg/config"
)

// maxUsageLogs caps the audit list kept per installation.
const maxUsageLogs = 1000

// Store implements the storage.Store interface using Redis
type Store struct {
	client        *redis.Client
	usageStore    *usageStore
	grantStore    *grantStore
	usageLogStore *usageLogStore
}

// Open creates a new Redis-backed storage instance
func Open(cfg config.RedisConfig, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	dialTimeout, err := parseTimeout(cfg.DialTimeout, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid dial_timeout: %w", err)
	}
	readTimeout, err := parseTimeout(cfg.ReadTimeout, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid read_timeout: %w", err)
	}
	writeTimeout, err := parseTimeout(cfg.WriteTimeout, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid write_timeout: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	keys := keyspace{prefix: cfg.KeyPrefix}
	if keys.prefix == "" {
		keys.prefix = "wellbeing"
	}
	log.Infow("connected to redis", "addr", cfg.Addr, "db", cfg.DB)

	return &Store{
		client:        client,
		usageStore:    &usageStore{client: client, keys: keys},
		grantStore:    &grantStore{client: client, keys: keys, log: log},
		usageLogStore: &usageLogStore{client: client, keys: keys, log: log},
	}, nil
}

func parseTimeout(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Usage() storage.UsageStore        { return s.usageStore }
func (s *Store) Grants() storage.GrantStore       { return s.grantStore }
func (s *Store) UsageLogs() storage.UsageLogStore { return s.usageLogStore }

// keyspace builds every key from an encoded user id. Ids are free-form, so
// raw ids could contain ':' and make one family's key equal another's. The
// hash tag keeps one installation's keys in the same cluster slot for MULTI.
type keyspace struct {
	prefix string
}

func (k keyspace) user(userID string) string {
	return "{" + base64.RawURLEncoding.EncodeToString([]byte(userID)) + "}"
}

func (k keyspace) usage(userID string) string {
	return fmt.Sprintf("%s:usage:%s", k.prefix, k.user(userID))
}

func (k keyspace) grants(userID string) string {
	return fmt.Sprintf("%s:grants:%s:all", k.prefix, k.user(userID))
}

func (k keyspace) grantsByCategory(userID, category string) string {
	return fmt.Sprintf("%s:grants_by_type:%s:%s", k.prefix, k.user(userID), category)
}

func (k keyspace) usageLogs(userID string) string {
	return fmt.Sprintf("%s:usage_log:%s", k.prefix, k.user(userID))
}
