package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
)

type usageStore struct {
	client *redis.Client
	keys   keyspace
}

// GetUsageRecord reads the JSON document stored for userID.
func (s *usageStore) GetUsageRecord(ctx context.Context, userID string) (*models.UsageRecord, error) {
	data, err := s.client.Get(ctx, s.keys.usage(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get usage record: %w", err)
	}
	return storage.DecodeUsageRecord(data)
}

// SaveUsageRecord overwrites the document for record.UserID.
func (s *usageStore) SaveUsageRecord(ctx context.Context, record *models.UsageRecord) error {
	if record == nil || record.UserID == "" {
		return fmt.Errorf("save usage record: user id is required")
	}
	record.UpdatedAt = time.Now().UTC()
	data, err := storage.EncodeUsageRecord(record)
	if err != nil {
		return fmt.Errorf("encode usage record: %w", err)
	}
	if err := s.client.Set(ctx, s.keys.usage(record.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("save usage record: %w", err)
	}
	return nil
}

func (s *usageStore) DeleteUsageRecord(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.keys.usage(userID)).Err(); err != nil {
		return fmt.Errorf("delete usage record: %w", err)
	}
	return nil
}
