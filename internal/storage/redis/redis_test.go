package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/internal/storage/storagetest"
	"github.com/fatflowers/wellbeing/pkg/config"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := Open(config.RedisConfig{
		Addr:         mr.Addr(),
		PoolSize:     4,
		DialTimeout:  "5s",
		ReadTimeout:  "3s",
		WriteTimeout: "3s",
		KeyPrefix:    "test",
	}, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		store, _ := setupTestStore(t)
		return store
	})
}

func TestOpen_InvalidTimeout(t *testing.T) {
	_, err := Open(config.RedisConfig{Addr: "127.0.0.1:0", DialTimeout: "soon"}, nil)
	require.ErrorContains(t, err, "dial_timeout")
}

func TestOpen_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(config.RedisConfig{Addr: addr, DialTimeout: "200ms"}, nil)
	require.Error(t, err)
}

func TestUsageStore_KeyLayout(t *testing.T) {
	store, mr := setupTestStore(t)
	rec := models.NewUsageRecord("install-1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	rec.ComicsGenerated = 2
	require.NoError(t, store.Usage().SaveUsageRecord(context.Background(), rec))

	raw, err := mr.Get("test:usage:{aW5zdGFsbC0x}")
	require.NoError(t, err)
	require.Contains(t, raw, `"comicsGenerated":2`)
	require.Contains(t, raw, `"schemaVersion":1`)
}

func TestUsageStore_CorruptDocumentIsMalformed(t *testing.T) {
	store, mr := setupTestStore(t)
	require.NoError(t, mr.Set(keyspace{prefix: "test"}.usage("install-1"), `{"comicsGenerated":`))

	_, err := store.Usage().GetUsageRecord(context.Background(), "install-1")
	require.ErrorIs(t, err, storage.ErrMalformed)
}

func TestGrantStore_SkipsMalformedEntries(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Grants().AppendGrant(ctx, &models.FeatherGrant{
		ID: "g1", UserID: "install-1", Timestamp: time.Now().UTC(), Category: "bonus", Amount: 3,
	}))
	_, err := mr.RPush(keyspace{prefix: "test"}.grants("install-1"), `garbage`, `{"amount":9}`)
	require.NoError(t, err)

	grants, err := store.Grants().ListGrants(ctx, "install-1")
	require.NoError(t, err)
	require.Len(t, grants, 1)
	require.Equal(t, "g1", grants[0].ID)
}

func TestUsageLogStore_Capped(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()
	for i := 0; i < maxUsageLogs+5; i++ {
		require.NoError(t, store.UsageLogs().AppendUsageLog(ctx, &models.UsageLog{
			ID: fmt.Sprintf("log-%d", i), UserID: "install-1", Reason: "comic_generated",
		}))
	}
	n, err := mr.List(keyspace{prefix: "test"}.usageLogs("install-1"))
	require.NoError(t, err)
	require.Len(t, n, maxUsageLogs)
}

func TestKeyspace_UserIdsWithSeparatorsDoNotCollide(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	grants := store.Grants()

	require.NoError(t, grants.AppendGrant(ctx, &models.FeatherGrant{
		ID: "g-alice", UserID: "alice", Timestamp: time.Now().UTC(), Category: "bonus", Amount: 50,
	}))

	got, err := grants.ListGrants(ctx, "alice:type:bonus")
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, grants.AppendGrant(ctx, &models.FeatherGrant{
		ID: "g-other", UserID: "alice:type:bonus", Timestamp: time.Now().UTC(), Category: "gift", Amount: 7,
	}))

	got, err = grants.ListGrantsByCategory(ctx, "alice", "bonus")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "g-alice", got[0].ID)

	got, err = grants.ListGrants(ctx, "alice:type:bonus")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "g-other", got[0].ID)

	k := keyspace{prefix: "test"}
	require.NotEqual(t, k.grantsByCategory("alice", "bonus"), k.grants("alice:type:bonus"))
	require.NotEqual(t, k.grants("alice"), k.usage("alice"))
}

func TestGrantStore_RecentSkipsMalformedBeforeLimit(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Grants().AppendGrant(ctx, &models.FeatherGrant{
			ID: fmt.Sprintf("g%d", i), UserID: "install-1", Timestamp: base.Add(time.Duration(i) * time.Hour),
			Category: "bonus", Amount: 1,
		}))
	}
	_, err := mr.RPush(keyspace{prefix: "test"}.grants("install-1"), `garbage`, `{"amount":9}`)
	require.NoError(t, err)

	got, err := store.Grants().ListRecentGrants(ctx, "install-1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "g2", got[0].ID)
	require.Equal(t, "g1", got[1].ID)

	got, err = store.Grants().ListRecentGrants(ctx, "install-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
}
