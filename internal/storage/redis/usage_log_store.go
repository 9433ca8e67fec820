package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/models"
)

// usageLogStore keeps the newest maxUsageLogs audit rows per installation.
type usageLogStore struct {
	client *redis.Client
	keys   keyspace
	log    *zap.SugaredLogger
}

func (s *usageLogStore) AppendUsageLog(ctx context.Context, log *models.UsageLog) error {
	if log == nil || log.ID == "" {
		return fmt.Errorf("append usage log: id is required")
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode usage log: %w", err)
	}
	key := s.keys.usageLogs(log.UserID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, maxUsageLogs-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append usage log: %w", err)
	}
	return nil
}

// ListUsageLogs returns the newest rows first.
func (s *usageLogStore) ListUsageLogs(ctx context.Context, userID string, limit int) ([]*models.UsageLog, error) {
	if limit <= 0 {
		return []*models.UsageLog{}, nil
	}
	raw, err := s.client.LRange(ctx, s.keys.usageLogs(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list usage logs: %w", err)
	}
	logs := make([]*models.UsageLog, 0, len(raw))
	for _, item := range raw {
		var l models.UsageLog
		if err := json.Unmarshal([]byte(item), &l); err != nil {
			s.log.Warnw("skipping malformed usage log", "user_id", userID, "err", err)
			continue
		}
		logs = append(logs, &l)
	}
	return logs, nil
}
