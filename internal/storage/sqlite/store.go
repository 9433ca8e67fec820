// Package sqlite is the embedded storage backend. It keeps every installation
// in a single local database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/pkg/types"
)

const timeLayout = time.RFC3339Nano

// Store is a SQLite-backed storage.Store.
type Store struct {
	sqlDB *sql.DB
	log   *zap.SugaredLogger
}

var _ storage.Store = (*Store)(nil)

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// a single writer connection avoids SQLITE_BUSY between our own goroutines
	sqlDB.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}

	log.Infow("opened sqlite store", "path", cleanPath)
	return &Store{sqlDB: sqlDB, log: log}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Usage() storage.UsageStore        { return s }
func (s *Store) Grants() storage.GrantStore       { return s }
func (s *Store) UsageLogs() storage.UsageLogStore { return s }

// GetUsageRecord loads the record of userID. Rows with an unknown schema
// version or unparsable dates yield storage.ErrMalformed.
func (s *Store) GetUsageRecord(ctx context.Context, userID string) (*models.UsageRecord, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT user_id, schema_version, comics_generated, breathing_exercises_completed,
       last_reset_date, is_premium, premium_expiry_date, updated_at
FROM usage_record WHERE user_id = ?`, userID)

	var (
		r         models.UsageRecord
		lastReset string
		isPremium int
		expiry    sql.NullString
		updatedAt string
	)
	err := row.Scan(&r.UserID, &r.SchemaVersion, &r.ComicsGenerated, &r.BreathingExercisesCompleted,
		&lastReset, &isPremium, &expiry, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get usage record: %w", err)
	}

	if r.SchemaVersion != models.UsageSchemaVersion {
		return nil, fmt.Errorf("%w: schema version %d", storage.ErrMalformed, r.SchemaVersion)
	}
	if r.ComicsGenerated < 0 || r.BreathingExercisesCompleted < 0 {
		return nil, fmt.Errorf("%w: negative counter", storage.ErrMalformed)
	}
	if r.LastResetDate, err = time.Parse(timeLayout, lastReset); err != nil {
		return nil, fmt.Errorf("%w: last_reset_date: %v", storage.ErrMalformed, err)
	}
	if expiry.Valid && expiry.String != "" {
		exp, err := time.Parse(timeLayout, expiry.String)
		if err != nil {
			return nil, fmt.Errorf("%w: premium_expiry_date: %v", storage.ErrMalformed, err)
		}
		r.PremiumExpiryDate = &exp
	}
	r.IsPremium = isPremium != 0
	r.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &r, nil
}

// SaveUsageRecord upserts the whole record.
func (s *Store) SaveUsageRecord(ctx context.Context, record *models.UsageRecord) error {
	if record == nil || record.UserID == "" {
		return fmt.Errorf("save usage record: user id is required")
	}
	if record.SchemaVersion == 0 {
		record.SchemaVersion = models.UsageSchemaVersion
	}
	var expiry sql.NullString
	if record.PremiumExpiryDate != nil {
		expiry = sql.NullString{String: record.PremiumExpiryDate.UTC().Format(timeLayout), Valid: true}
	}
	isPremium := 0
	if record.IsPremium {
		isPremium = 1
	}
	record.UpdatedAt = time.Now().UTC()

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO usage_record (user_id, schema_version, comics_generated, breathing_exercises_completed,
                          last_reset_date, is_premium, premium_expiry_date, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    schema_version = excluded.schema_version,
    comics_generated = excluded.comics_generated,
    breathing_exercises_completed = excluded.breathing_exercises_completed,
    last_reset_date = excluded.last_reset_date,
    is_premium = excluded.is_premium,
    premium_expiry_date = excluded.premium_expiry_date,
    updated_at = excluded.updated_at`,
		record.UserID, record.SchemaVersion, record.ComicsGenerated, record.BreathingExercisesCompleted,
		record.LastResetDate.UTC().Format(timeLayout), isPremium, expiry, record.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save usage record: %w", err)
	}
	return nil
}

func (s *Store) DeleteUsageRecord(ctx context.Context, userID string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM usage_record WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete usage record: %w", err)
	}
	return nil
}

func (s *Store) AppendGrant(ctx context.Context, grant *models.FeatherGrant) error {
	if grant == nil || grant.ID == "" {
		return fmt.Errorf("append grant: id is required")
	}
	var desc sql.NullString
	if grant.Description != nil {
		desc = sql.NullString{String: *grant.Description, Valid: true}
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO feather_grant (id, user_id, timestamp, type, amount, description)
VALUES (?, ?, ?, ?, ?, ?)`,
		grant.ID, grant.UserID, grant.Timestamp.UTC().Format(timeLayout), grant.Category, grant.Amount, desc,
	)
	if err != nil {
		return fmt.Errorf("append grant: %w", err)
	}
	return nil
}

const grantColumns = `id, user_id, timestamp, type, amount, description`

func (s *Store) ListGrants(ctx context.Context, userID string) ([]*models.FeatherGrant, error) {
	return s.queryGrants(ctx, 0, `SELECT `+grantColumns+` FROM feather_grant WHERE user_id = ? ORDER BY seq ASC`, userID)
}

func (s *Store) ListRecentGrants(ctx context.Context, userID string, limit int) ([]*models.FeatherGrant, error) {
	if limit <= 0 {
		return []*models.FeatherGrant{}, nil
	}
	// no SQL LIMIT: malformed rows are dropped while scanning and must not count
	return s.queryGrants(ctx, limit, `SELECT `+grantColumns+` FROM feather_grant WHERE user_id = ? ORDER BY seq DESC`, userID)
}

func (s *Store) ListGrantsByCategory(ctx context.Context, userID, category string) ([]*models.FeatherGrant, error) {
	return s.queryGrants(ctx, 0, `SELECT `+grantColumns+` FROM feather_grant WHERE user_id = ? AND type = ? ORDER BY seq ASC`, userID, category)
}

// queryGrants scans well-formed grants, stopping after limit of them when limit > 0.
func (s *Store) queryGrants(ctx context.Context, limit int, query string, args ...any) ([]*models.FeatherGrant, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer rows.Close()

	grants := make([]*models.FeatherGrant, 0)
	for (limit <= 0 || len(grants) < limit) && rows.Next() {
		var (
			g    models.FeatherGrant
			ts   string
			desc sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.UserID, &ts, &g.Category, &g.Amount, &desc); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		parsed, err := time.Parse(timeLayout, ts)
		if err != nil || g.Category == "" {
			s.log.Warnw("skipping malformed grant", "grant_id", g.ID, "user_id", g.UserID, "err", err)
			continue
		}
		g.Timestamp = parsed
		if desc.Valid {
			d := desc.String
			g.Description = &d
		}
		grants = append(grants, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grants: %w", err)
	}
	return grants, nil
}

func (s *Store) AppendUsageLog(ctx context.Context, log *models.UsageLog) error {
	if log == nil || log.ID == "" {
		return fmt.Errorf("append usage log: id is required")
	}
	before, err := log.Before.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal usage log before: %w", err)
	}
	after, err := log.After.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal usage log after: %w", err)
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO usage_log (id, user_id, reason, before_json, after_json, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		log.ID, log.UserID, string(log.Reason), string(before), string(after), log.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("append usage log: %w", err)
	}
	return nil
}

// ListUsageLogs returns at most limit audit rows of userID, newest first.
func (s *Store) ListUsageLogs(ctx context.Context, userID string, limit int) ([]*models.UsageLog, error) {
	if limit <= 0 {
		return []*models.UsageLog{}, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, user_id, reason, before_json, after_json, created_at
FROM usage_log WHERE user_id = ? ORDER BY seq DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list usage logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*models.UsageLog, 0)
	for rows.Next() {
		var (
			l             models.UsageLog
			reason        string
			before, after sql.NullString
			createdAt     string
		)
		if err := rows.Scan(&l.ID, &l.UserID, &reason, &before, &after, &createdAt); err != nil {
			return nil, fmt.Errorf("scan usage log: %w", err)
		}
		l.Reason = types.UsageChangeReason(reason)
		if before.Valid {
			if err := l.Before.UnmarshalJSON([]byte(before.String)); err != nil {
				s.log.Warnw("skipping malformed usage log", "log_id", l.ID, "err", err)
				continue
			}
		}
		if after.Valid {
			if err := l.After.UnmarshalJSON([]byte(after.String)); err != nil {
				s.log.Warnw("skipping malformed usage log", "log_id", l.ID, "err", err)
				continue
			}
		}
		l.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage logs: %w", err)
	}
	return logs, nil
}
