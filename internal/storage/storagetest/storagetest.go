// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/pkg/types"
)

// Run exercises newStore against the storage contracts. newStore must return
// an empty store; it is called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()

	t.Run("usage record missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Usage().GetUsageRecord(context.Background(), "nobody")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("usage record round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		exp := time.Date(2026, 4, 8, 9, 30, 0, 123456789, time.UTC)
		want := &models.UsageRecord{
			UserID:                      "install-1",
			SchemaVersion:               models.UsageSchemaVersion,
			ComicsGenerated:             3,
			BreathingExercisesCompleted: 2,
			LastResetDate:               time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			IsPremium:                   true,
			PremiumExpiryDate:           &exp,
		}
		require.NoError(t, s.Usage().SaveUsageRecord(ctx, want))

		got, err := s.Usage().GetUsageRecord(ctx, "install-1")
		require.NoError(t, err)
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(models.UsageRecord{}, "UpdatedAt")); diff != "" {
			t.Fatalf("usage record mismatch (-want +got):\n%s", diff)
		}

		// save replaces the whole record, including clearing the expiry
		want.IsPremium = false
		want.PremiumExpiryDate = nil
		want.ComicsGenerated = 4
		require.NoError(t, s.Usage().SaveUsageRecord(ctx, want))
		got, err = s.Usage().GetUsageRecord(ctx, "install-1")
		require.NoError(t, err)
		require.False(t, got.IsPremium)
		require.Nil(t, got.PremiumExpiryDate)
		require.Equal(t, 4, got.ComicsGenerated)
	})

	t.Run("usage record delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Usage().DeleteUsageRecord(ctx, "install-1"), "deleting a missing record is a no-op")
		require.NoError(t, s.Usage().SaveUsageRecord(ctx, models.NewUsageRecord("install-1", time.Now().UTC())))
		require.NoError(t, s.Usage().SaveUsageRecord(ctx, models.NewUsageRecord("install-2", time.Now().UTC())))
		require.NoError(t, s.Usage().DeleteUsageRecord(ctx, "install-1"))

		_, err := s.Usage().GetUsageRecord(ctx, "install-1")
		require.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.Usage().GetUsageRecord(ctx, "install-2")
		require.NoError(t, err)
	})

	t.Run("grants ordering and filtering", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		t0 := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
		desc := "Daily mood check-in"

		var appended []*models.FeatherGrant
		for i, cat := range []string{types.GrantCategoryTaskCompletion, types.GrantCategoryDailyCheckin, types.GrantCategoryTaskCompletion, types.GrantCategoryBonus} {
			g := &models.FeatherGrant{
				ID:        fmt.Sprintf("0000000%d", i),
				UserID:    "install-1",
				Timestamp: t0.Add(time.Duration(i) * time.Minute),
				Category:  cat,
				Amount:    int64(i + 1),
			}
			if cat == types.GrantCategoryDailyCheckin {
				g.Description = &desc
			}
			require.NoError(t, s.Grants().AppendGrant(ctx, g))
			appended = append(appended, g)
		}
		require.NoError(t, s.Grants().AppendGrant(ctx, &models.FeatherGrant{
			ID: "other-1", UserID: "install-2", Timestamp: t0, Category: types.GrantCategoryBonus, Amount: 50,
		}))

		all, err := s.Grants().ListGrants(ctx, "install-1")
		require.NoError(t, err)
		if diff := cmp.Diff(appended, all); diff != "" {
			t.Fatalf("ListGrants mismatch (-want +got):\n%s", diff)
		}

		recent, err := s.Grants().ListRecentGrants(ctx, "install-1", 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		require.Equal(t, "00000003", recent[0].ID)
		require.Equal(t, "00000002", recent[1].ID)

		recent, err = s.Grants().ListRecentGrants(ctx, "install-1", 100)
		require.NoError(t, err)
		require.Len(t, recent, 4)

		recent, err = s.Grants().ListRecentGrants(ctx, "install-1", 0)
		require.NoError(t, err)
		require.Empty(t, recent)

		tasks, err := s.Grants().ListGrantsByCategory(ctx, "install-1", types.GrantCategoryTaskCompletion)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		require.Equal(t, "00000000", tasks[0].ID)
		require.Equal(t, "00000002", tasks[1].ID)

		none, err := s.Grants().ListGrantsByCategory(ctx, "install-1", "Task_Completion")
		require.NoError(t, err)
		require.Empty(t, none, "category match is exact")

		checkins, err := s.Grants().ListGrantsByCategory(ctx, "install-1", types.GrantCategoryDailyCheckin)
		require.NoError(t, err)
		require.Len(t, checkins, 1)
		require.Equal(t, desc, checkins[0].DescriptionText())

		empty, err := s.Grants().ListGrants(ctx, "install-3")
		require.NoError(t, err)
		require.Empty(t, empty)
	})

	t.Run("usage logs newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
		before := models.NewUsageRecord("install-1", now)
		after := before.Clone()
		after.ComicsGenerated = 1

		require.NoError(t, s.UsageLogs().AppendUsageLog(ctx, &models.UsageLog{
			ID: "log-1", UserID: "install-1", Reason: types.UsageChangeReasonComicGenerated,
			Before: datatypes.NewJSONType(before), After: datatypes.NewJSONType(after), CreatedAt: now,
		}))
		require.NoError(t, s.UsageLogs().AppendUsageLog(ctx, &models.UsageLog{
			ID: "log-2", UserID: "install-1", Reason: types.UsageChangeReasonReset,
			Before: datatypes.NewJSONType(after), After: datatypes.NewJSONType[*models.UsageRecord](nil), CreatedAt: now.Add(time.Second),
		}))

		logs, err := s.UsageLogs().ListUsageLogs(ctx, "install-1", 10)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		require.Equal(t, "log-2", logs[0].ID)
		require.Equal(t, types.UsageChangeReasonReset, logs[0].Reason)
		require.Nil(t, logs[0].After.Data())
		require.Equal(t, 1, logs[1].After.Data().ComicsGenerated)
		require.Equal(t, 0, logs[1].Before.Data().ComicsGenerated)

		logs, err = s.UsageLogs().ListUsageLogs(ctx, "install-1", 1)
		require.NoError(t, err)
		require.Len(t, logs, 1)
	})
}
