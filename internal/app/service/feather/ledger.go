package feather

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/pkg/logctx"
	"github.com/fatflowers/wellbeing/pkg/metrics"
	"github.com/fatflowers/wellbeing/pkg/tool"
	"github.com/fatflowers/wellbeing/pkg/types"
)

// DefaultRecentLimit is used when RecentGrants gets a non-positive limit.
const DefaultRecentLimit = 10

var (
	ErrInvalidAmount   = errors.New("feather: grant amount must be positive")
	ErrInvalidCategory = errors.New("feather: grant category is required")
)

// Ledger records feather grants and answers balance queries. Unlike the usage
// tracker, every storage failure is returned so callers can retry a lost reward.
type Ledger struct {
	store   storage.GrantStore
	log     *zap.SugaredLogger
	metrics *metrics.Business
	now     func() time.Time
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithMetrics(m *metrics.Business) Option {
	return func(l *Ledger) { l.metrics = m }
}

func New(store storage.GrantStore, log *zap.SugaredLogger, opts ...Option) *Ledger {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	l := &Ledger{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddGrant appends one immutable grant stamped with the current time.
// An empty description is stored as absent.
func (l *Ledger) AddGrant(ctx context.Context, userID, category string, amount int64, description string) (*models.FeatherGrant, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if strings.TrimSpace(category) == "" {
		return nil, ErrInvalidCategory
	}
	grant := &models.FeatherGrant{
		ID:        tool.GenerateUUIDV7(),
		UserID:    userID,
		Timestamp: l.now().UTC(),
		Category:  category,
		Amount:    amount,
	}
	if description != "" {
		grant.Description = &description
	}

	if err := l.store.AppendGrant(ctx, grant); err != nil {
		l.metrics.GrantFailed(category)
		logctx.FromCtx(ctx, l.log).Errorw("failed to append feather grant", "user_id", userID, "category", category, "amount", amount, "err", err)
		return nil, fmt.Errorf("append feather grant: %w", err)
	}
	l.metrics.GrantRecorded(category, amount)
	return grant, nil
}

// TotalFeathers sums the whole ledger. There is no stored balance to drift.
func (l *Ledger) TotalFeathers(ctx context.Context, userID string) (int64, error) {
	grants, err := l.store.ListGrants(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list feather grants: %w", err)
	}
	return lo.SumBy(grants, func(g *models.FeatherGrant) int64 { return g.Amount }), nil
}

// RecentGrants returns up to limit grants, newest first.
func (l *Ledger) RecentGrants(ctx context.Context, userID string, limit int) ([]*models.FeatherGrant, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	grants, err := l.store.ListRecentGrants(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent feather grants: %w", err)
	}
	slices.SortStableFunc(grants, func(a, b *models.FeatherGrant) int {
		switch {
		case a.NewerThan(b):
			return -1
		case b.NewerThan(a):
			return 1
		}
		return 0
	})
	return grants, nil
}

// GrantsByCategory returns grants whose category matches exactly, oldest first.
func (l *Ledger) GrantsByCategory(ctx context.Context, userID, category string) ([]*models.FeatherGrant, error) {
	grants, err := l.store.ListGrantsByCategory(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("list feather grants by category: %w", err)
	}
	return grants, nil
}

// AllGrants returns the full ledger in insertion order.
func (l *Ledger) AllGrants(ctx context.Context, userID string) ([]*models.FeatherGrant, error) {
	grants, err := l.store.ListGrants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list feather grants: %w", err)
	}
	return grants, nil
}

func (l *Ledger) AwardTaskCompletion(ctx context.Context, userID, taskType string) (*models.FeatherGrant, error) {
	return l.AddGrant(ctx, userID, types.GrantCategoryTaskCompletion, 1, fmt.Sprintf("Completed %s task", taskType))
}

func (l *Ledger) AwardDailyCheckin(ctx context.Context, userID string) (*models.FeatherGrant, error) {
	return l.AddGrant(ctx, userID, types.GrantCategoryDailyCheckin, 1, "Daily mood check-in")
}

func (l *Ledger) AwardReflection(ctx context.Context, userID string) (*models.FeatherGrant, error) {
	return l.AddGrant(ctx, userID, types.GrantCategoryReflection, 1, "Completed reflection")
}

// AwardBonus grants amount feathers with reason as the description. A
// non-positive amount grants the default of one feather.
func (l *Ledger) AwardBonus(ctx context.Context, userID, reason string, amount int64) (*models.FeatherGrant, error) {
	if amount <= 0 {
		amount = 1
	}
	return l.AddGrant(ctx, userID, types.GrantCategoryBonus, amount, reason)
}
