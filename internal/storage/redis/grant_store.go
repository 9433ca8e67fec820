package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
)

// grantStore keeps each ledger as an append-only list of JSON documents, plus
// one list per category so category lookups do not scan the whole ledger.
type grantStore struct {
	client *redis.Client
	keys   keyspace
	log    *zap.SugaredLogger
}

// AppendGrant pushes the grant onto both lists in one MULTI/EXEC.
func (s *grantStore) AppendGrant(ctx context.Context, grant *models.FeatherGrant) error {
	if grant == nil || grant.ID == "" {
		return fmt.Errorf("append grant: id is required")
	}
	data, err := storage.EncodeGrant(grant)
	if err != nil {
		return fmt.Errorf("encode grant: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, s.keys.grants(grant.UserID), data)
		pipe.RPush(ctx, s.keys.grantsByCategory(grant.UserID, grant.Category), data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append grant: %w", err)
	}
	return nil
}

func (s *grantStore) ListGrants(ctx context.Context, userID string) ([]*models.FeatherGrant, error) {
	raw, err := s.client.LRange(ctx, s.keys.grants(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	return s.decodeAll(userID, raw), nil
}

// ListRecentGrants walks the list backwards one window at a time, so malformed
// entries do not use up the limit while older valid grants remain.
func (s *grantStore) ListRecentGrants(ctx context.Context, userID string, limit int) ([]*models.FeatherGrant, error) {
	grants := make([]*models.FeatherGrant, 0, max(limit, 0))
	if limit <= 0 {
		return grants, nil
	}
	key := s.keys.grants(userID)
	window := int64(limit)
	stop := int64(-1)
	for len(grants) < limit {
		start := stop - window + 1
		raw, err := s.client.LRange(ctx, key, start, stop).Result()
		if err != nil {
			return nil, fmt.Errorf("list recent grants: %w", err)
		}
		for i := len(raw) - 1; i >= 0 && len(grants) < limit; i-- {
			g, err := storage.DecodeGrant([]byte(raw[i]))
			if err != nil {
				s.log.Warnw("skipping malformed grant", "user_id", userID, "err", err)
				continue
			}
			grants = append(grants, g)
		}
		// a short window means the head of the list was reached
		if int64(len(raw)) < window {
			break
		}
		stop = start - 1
	}
	return grants, nil
}

func (s *grantStore) ListGrantsByCategory(ctx context.Context, userID, category string) ([]*models.FeatherGrant, error) {
	raw, err := s.client.LRange(ctx, s.keys.grantsByCategory(userID, category), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list grants by category: %w", err)
	}
	return s.decodeAll(userID, raw), nil
}

func (s *grantStore) decodeAll(userID string, raw []string) []*models.FeatherGrant {
	grants := make([]*models.FeatherGrant, 0, len(raw))
	for _, item := range raw {
		g, err := storage.DecodeGrant([]byte(item))
		if err != nil {
			s.log.Warnw("skipping malformed grant", "user_id", userID, "err", err)
			continue
		}
		grants = append(grants, g)
	}
	return grants
}
