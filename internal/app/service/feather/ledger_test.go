package feather

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/internal/storage/sqlite"
	"github.com/fatflowers/wellbeing/pkg/metrics"
	"github.com/fatflowers/wellbeing/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const user = "install-1"

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns a strictly increasing time so grants never share a timestamp.
func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func newTestLedger(t *testing.T, opts ...Option) *Ledger {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &stepClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return New(store.Grants(), zap.NewNop().Sugar(), opts...)
}

func TestTotalFeathers_IsAdditiveAndOrderIndependent(t *testing.T) {
	amounts := []int64{1, 1, 5, 2, 10, 1, 3}
	categories := []string{types.GrantCategoryTaskCompletion, types.GrantCategoryBonus, "custom", types.GrantCategoryReflection}
	var want int64
	for _, a := range amounts {
		want += a
	}

	for round := 0; round < 3; round++ {
		l := newTestLedger(t)
		ctx := context.Background()
		shuffled := append([]int64(nil), amounts...)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		for i, a := range shuffled {
			_, err := l.AddGrant(ctx, user, categories[i%len(categories)], a, "")
			require.NoError(t, err)
		}
		total, err := l.TotalFeathers(ctx, user)
		require.NoError(t, err)
		require.Equal(t, want, total)
	}
}

func TestAddGrant_IsImmutable(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	g, err := l.AddGrant(ctx, user, types.GrantCategoryTaskCompletion, 1, "")
	require.NoError(t, err)
	require.Nil(t, g.Description)

	for i := 0; i < 3; i++ {
		total, err := l.TotalFeathers(ctx, user)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)

		_, err = l.GrantsByCategory(ctx, user, types.GrantCategoryTaskCompletion)
		require.NoError(t, err)

		recent, err := l.RecentGrants(ctx, user, 1)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		require.Equal(t, g.ID, recent[0].ID)
	}

	newer, err := l.AwardReflection(ctx, user)
	require.NoError(t, err)
	recent, err := l.RecentGrants(ctx, user, 1)
	require.NoError(t, err)
	require.Equal(t, newer.ID, recent[0].ID)
}

func TestAwardTaskCompletion_ThreeTimes(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := l.AwardTaskCompletion(ctx, user, "breathing")
		require.NoError(t, err)
	}

	total, err := l.TotalFeathers(ctx, user)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)

	grants, err := l.GrantsByCategory(ctx, user, types.GrantCategoryTaskCompletion)
	require.NoError(t, err)
	require.Len(t, grants, 3)
	for _, g := range grants {
		require.Equal(t, int64(1), g.Amount)
		require.Equal(t, "Completed breathing task", g.DescriptionText())
	}
}

func TestAwardWrappers(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	g, err := l.AwardDailyCheckin(ctx, user)
	require.NoError(t, err)
	require.Equal(t, types.GrantCategoryDailyCheckin, g.Category)
	require.Equal(t, "Daily mood check-in", g.DescriptionText())

	g, err = l.AwardReflection(ctx, user)
	require.NoError(t, err)
	require.Equal(t, types.GrantCategoryReflection, g.Category)
	require.Equal(t, "Completed reflection", g.DescriptionText())

	g, err = l.AwardBonus(ctx, user, "Seven day streak", 5)
	require.NoError(t, err)
	require.Equal(t, types.GrantCategoryBonus, g.Category)
	require.Equal(t, int64(5), g.Amount)
	require.Equal(t, "Seven day streak", g.DescriptionText())

	g, err = l.AwardBonus(ctx, user, "Welcome", 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), g.Amount)

	total, err := l.TotalFeathers(ctx, user)
	require.NoError(t, err)
	require.Equal(t, int64(8), total)
}

func TestRecentGrants_NewestFirst(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	var ids []string
	for i := 0; i < 12; i++ {
		g, err := l.AwardDailyCheckin(ctx, user)
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}

	recent, err := l.RecentGrants(ctx, user, 0)
	require.NoError(t, err)
	require.Len(t, recent, DefaultRecentLimit)
	for i, g := range recent {
		require.Equal(t, ids[len(ids)-1-i], g.ID)
	}

	recent, err = l.RecentGrants(ctx, user, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.True(t, recent[0].NewerThan(recent[1]))
	require.True(t, recent[1].NewerThan(recent[2]))
}

func TestAddGrant_Validation(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	_, err := l.AddGrant(ctx, user, types.GrantCategoryBonus, 0, "")
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = l.AddGrant(ctx, user, types.GrantCategoryBonus, -3, "")
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = l.AddGrant(ctx, user, " ", 1, "")
	require.ErrorIs(t, err, ErrInvalidCategory)

	total, err := l.TotalFeathers(ctx, user)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestLedgers_AreIsolatedPerInstallation(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	_, err := l.AwardBonus(ctx, "install-a", "a", 4)
	require.NoError(t, err)
	_, err = l.AwardBonus(ctx, "install-b", "b", 9)
	require.NoError(t, err)

	total, err := l.TotalFeathers(ctx, "install-a")
	require.NoError(t, err)
	require.Equal(t, int64(4), total)
}

var errUnavailable = errors.New("storage unavailable")

type brokenGrants struct{}

func (brokenGrants) AppendGrant(context.Context, *models.FeatherGrant) error { return errUnavailable }
func (brokenGrants) ListGrants(context.Context, string) ([]*models.FeatherGrant, error) {
	return nil, errUnavailable
}
func (brokenGrants) ListRecentGrants(context.Context, string, int) ([]*models.FeatherGrant, error) {
	return nil, errUnavailable
}
func (brokenGrants) ListGrantsByCategory(context.Context, string, string) ([]*models.FeatherGrant, error) {
	return nil, errUnavailable
}

var _ storage.GrantStore = brokenGrants{}

func TestStorageFailures_AreReturned(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewBusiness(reg, nil)
	l := New(brokenGrants{}, nil, WithMetrics(m))
	ctx := context.Background()

	_, err := l.AwardTaskCompletion(ctx, user, "journal")
	require.ErrorIs(t, err, errUnavailable)
	_, err = l.TotalFeathers(ctx, user)
	require.ErrorIs(t, err, errUnavailable)
	_, err = l.RecentGrants(ctx, user, 5)
	require.ErrorIs(t, err, errUnavailable)
	_, err = l.GrantsByCategory(ctx, user, types.GrantCategoryBonus)
	require.ErrorIs(t, err, errUnavailable)

	n, err := testutil.GatherAndCount(reg, "wellbeing_feather_grant_failures_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
