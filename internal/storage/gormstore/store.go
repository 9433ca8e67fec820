// Package gormstore implements storage on postgres through GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/platform/db"
	"github.com/fatflowers/wellbeing/internal/storage"
)

type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

var _ storage.Store = (*Store)(nil)

// Open connects to postgres and migrates the schema.
func Open(dsn string, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	gdb, err := db.NewPostgres(log, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}
	if err := db.AutoMigrate(log, gdb); err != nil {
		_ = db.Close(log, gdb)
		return nil, fmt.Errorf("migrate postgres store: %w", err)
	}
	return New(gdb, log), nil
}

// New wraps an existing connection without migrating.
func New(gdb *gorm.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{db: gdb, log: log}
}

func (s *Store) Close() error {
	return db.Close(s.log, s.db)
}

func (s *Store) Usage() storage.UsageStore        { return s }
func (s *Store) Grants() storage.GrantStore       { return s }
func (s *Store) UsageLogs() storage.UsageLogStore { return s }

func (s *Store) GetUsageRecord(ctx context.Context, userID string) (*models.UsageRecord, error) {
	var r models.UsageRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
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
	return &r, nil
}

// usageRecordColumns are overwritten on conflict. Listing them keeps nil
// pointers such as a cleared premium_expiry_date in the SET clause.
var usageRecordColumns = []string{
	"schema_version",
	"comics_generated",
	"breathing_exercises_completed",
	"last_reset_date",
	"is_premium",
	"premium_expiry_date",
	"updated_at",
}

// SaveUsageRecord replaces the stored record, writing NULL for a cleared expiry.
func (s *Store) SaveUsageRecord(ctx context.Context, record *models.UsageRecord) error {
	if record == nil || record.UserID == "" {
		return fmt.Errorf("save usage record: user id is required")
	}
	if record.SchemaVersion == 0 {
		record.SchemaVersion = models.UsageSchemaVersion
	}
	record.UpdatedAt = time.Now().UTC()
	if err := upsertUsageRecord(s.db.WithContext(ctx), record).Error; err != nil {
		return fmt.Errorf("save usage record: %w", err)
	}
	return nil
}

func upsertUsageRecord(tx *gorm.DB, record *models.UsageRecord) *gorm.DB {
	return tx.Select(append([]string{"user_id"}, usageRecordColumns...)).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(usageRecordColumns),
		}).
		Create(record)
}

func (s *Store) DeleteUsageRecord(ctx context.Context, userID string) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UsageRecord{}).Error; err != nil {
		return fmt.Errorf("delete usage record: %w", err)
	}
	return nil
}

func (s *Store) AppendGrant(ctx context.Context, grant *models.FeatherGrant) error {
	if grant == nil || grant.ID == "" {
		return fmt.Errorf("append grant: id is required")
	}
	if err := insertGrant(s.db.WithContext(ctx), grant).Error; err != nil {
		return fmt.Errorf("append grant: %w", err)
	}
	return nil
}

// Grant ids are UUIDv7, so (timestamp, id) reproduces insertion order.
func (s *Store) ListGrants(ctx context.Context, userID string) ([]*models.FeatherGrant, error) {
	grants := make([]*models.FeatherGrant, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(`"timestamp" ASC`).Order("id ASC").
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	return grants, nil
}

func (s *Store) ListRecentGrants(ctx context.Context, userID string, limit int) ([]*models.FeatherGrant, error) {
	grants := make([]*models.FeatherGrant, 0)
	if limit <= 0 {
		return grants, nil
	}
	err := recentGrantsQuery(s.db.WithContext(ctx), userID, limit).Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("list recent grants: %w", err)
	}
	return grants, nil
}

func recentGrantsQuery(tx *gorm.DB, userID string, limit int) *gorm.DB {
	return tx.Where("user_id = ?", userID).
		Order(`"timestamp" DESC`).Order("id DESC").
		Limit(limit)
}

func insertGrant(tx *gorm.DB, grant *models.FeatherGrant) *gorm.DB {
	return tx.Select("id", "user_id", "timestamp", "type", "amount", "description").Create(grant)
}

func (s *Store) ListGrantsByCategory(ctx context.Context, userID, category string) ([]*models.FeatherGrant, error) {
	grants := make([]*models.FeatherGrant, 0)
	err := grantsByCategoryQuery(s.db.WithContext(ctx), userID, category).Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("list grants by category: %w", err)
	}
	return grants, nil
}

// Category is stored in column "type", matched exactly.
func grantsByCategoryQuery(tx *gorm.DB, userID, category string) *gorm.DB {
	return tx.Where(`user_id = ? AND "type" = ?`, userID, category).
		Order(`"timestamp" ASC`).Order("id ASC")
}

func (s *Store) AppendUsageLog(ctx context.Context, log *models.UsageLog) error {
	if log == nil || log.ID == "" {
		return fmt.Errorf("append usage log: id is required")
	}
	if err := insertUsageLog(s.db.WithContext(ctx), log).Error; err != nil {
		return fmt.Errorf("append usage log: %w", err)
	}
	return nil
}

func insertUsageLog(tx *gorm.DB, log *models.UsageLog) *gorm.DB {
	return tx.Select("id", "user_id", "reason", "before", "after", "created_at").Create(log)
}

func (s *Store) ListUsageLogs(ctx context.Context, userID string, limit int) ([]*models.UsageLog, error) {
	logs := make([]*models.UsageLog, 0)
	if limit <= 0 {
		return logs, nil
	}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list usage logs: %w", err)
	}
	return logs, nil
}
