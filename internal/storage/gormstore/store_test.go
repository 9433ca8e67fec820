package gormstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fatflowers/wellbeing/internal/models"
)

// dryRunDB builds statements without a server connection.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return gdb
}

func TestListRecentGrants_OrdersNewestFirst(t *testing.T) {
	gdb := dryRunDB(t)
	sql := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var grants []*models.FeatherGrant
		return recentGrantsQuery(tx, "install-1", 10).Find(&grants)
	})
	require.Contains(t, sql, `FROM "feather_grant"`)
	require.Contains(t, sql, `ORDER BY "timestamp" DESC,id DESC`)
	require.Contains(t, sql, "LIMIT 10")
}

// splitInsert returns the INSERT column list and the ON CONFLICT tail.
func splitInsert(t *testing.T, sql string) (string, string) {
	t.Helper()
	head, tail, ok := strings.Cut(sql, " VALUES ")
	require.True(t, ok, sql)
	return head, tail
}

func TestSaveUsageRecord_Upserts(t *testing.T) {
	gdb := dryRunDB(t)
	s := New(gdb, nil)
	rec := &models.UsageRecord{UserID: "install-1", LastResetDate: time.Now()}

	require.NoError(t, s.SaveUsageRecord(context.Background(), rec))
	require.Equal(t, models.UsageSchemaVersion, rec.SchemaVersion)
	require.False(t, rec.UpdatedAt.IsZero())

	// a premium grant that was revoked: nil expiry must still overwrite the row
	cleared := &models.UsageRecord{
		UserID:        "install-1",
		SchemaVersion: models.UsageSchemaVersion,
		LastResetDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	sql := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertUsageRecord(tx, cleared)
	})
	columns, tail := splitInsert(t, sql)
	require.Contains(t, columns, `INSERT INTO "usage_record"`)
	for _, col := range append([]string{"user_id"}, usageRecordColumns...) {
		require.Contains(t, columns, `"`+col+`"`)
	}
	require.Contains(t, tail, "NULL")
	require.Contains(t, tail, `ON CONFLICT ("user_id") DO UPDATE SET`)
	for _, col := range usageRecordColumns {
		require.Contains(t, tail, `"`+col+`"="excluded"."`+col+`"`)
	}
	require.Contains(t, tail, `"premium_expiry_date"="excluded"."premium_expiry_date"`)
	require.Contains(t, tail, `"comics_generated"="excluded"."comics_generated"`)
	require.NotContains(t, tail, `"user_id"="excluded"."user_id"`)
}

func TestAppendGrant_InsertsEveryColumn(t *testing.T) {
	gdb := dryRunDB(t)
	g := &models.FeatherGrant{
		ID:        "0190c0de-0000-7000-8000-000000000001",
		UserID:    "install-1",
		Timestamp: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
		Category:  "bonus",
		Amount:    50,
	}
	sql := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return insertGrant(tx, g)
	})
	columns, values := splitInsert(t, sql)
	require.Contains(t, columns, `INSERT INTO "feather_grant"`)
	for _, col := range []string{"id", "user_id", "timestamp", "type", "amount", "description"} {
		require.Contains(t, columns, `"`+col+`"`)
	}
	require.Contains(t, values, "'bonus'")
	require.Contains(t, values, "50")
	require.Contains(t, values, "NULL")
	require.NotContains(t, sql, "ON CONFLICT", "grants are append-only")

	require.NoError(t, New(gdb, nil).AppendGrant(context.Background(), g))
}

func TestAppendUsageLog_InsertsEveryColumn(t *testing.T) {
	gdb := dryRunDB(t)
	log := &models.UsageLog{ID: "log-1", UserID: "install-1", Reason: "comic_generated"}
	sql := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return insertUsageLog(tx, log)
	})
	columns, _ := splitInsert(t, sql)
	require.Contains(t, columns, `INSERT INTO "usage_log"`)
	for _, col := range []string{"id", "user_id", "reason", "before", "after", "created_at"} {
		require.Contains(t, columns, `"`+col+`"`)
	}

	require.NoError(t, New(gdb, nil).AppendUsageLog(context.Background(), log))
	require.Error(t, New(gdb, nil).AppendUsageLog(context.Background(), &models.UsageLog{}))
}

func TestListGrantsByCategory_FiltersOnTypeColumn(t *testing.T) {
	gdb := dryRunDB(t)
	sql := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var grants []*models.FeatherGrant
		return grantsByCategoryQuery(tx, "install-1", "task_completion").Find(&grants)
	})
	require.Contains(t, sql, `FROM "feather_grant"`)
	require.Contains(t, sql, `user_id = 'install-1' AND "type" = 'task_completion'`)
	require.Contains(t, sql, `ORDER BY "timestamp" ASC,id ASC`)
	require.NotContains(t, sql, "LIMIT")
}

func TestListRecentGrants_NonPositiveLimit(t *testing.T) {
	s := New(dryRunDB(t), nil)
	grants, err := s.ListRecentGrants(context.Background(), "install-1", 0)
	require.NoError(t, err)
	require.Empty(t, grants)
}

func TestSaveUsageRecord_RequiresUserID(t *testing.T) {
	s := New(dryRunDB(t), nil)
	require.Error(t, s.SaveUsageRecord(context.Background(), &models.UsageRecord{}))
	require.Error(t, s.AppendGrant(context.Background(), &models.FeatherGrant{}))
}
