package storage

import (
	"context"
	"errors"

	"github.com/fatflowers/wellbeing/internal/models"
)

// ErrNotFound is returned when an installation has no usage record yet.
var ErrNotFound = errors.New("storage: record not found")

// ErrMalformed is returned when a stored usage record cannot be decoded or
// carries an unknown schema version.
var ErrMalformed = errors.New("storage: malformed record")

// Store represents the root storage interface.
type Store interface {
	Close() error
	Usage() UsageStore
	Grants() GrantStore
	UsageLogs() UsageLogStore
}

// UsageStore persists one UsageRecord per installation. Save replaces the whole
// record; there are no field-level updates.
type UsageStore interface {
	GetUsageRecord(ctx context.Context, userID string) (*models.UsageRecord, error)
	SaveUsageRecord(ctx context.Context, record *models.UsageRecord) error
	DeleteUsageRecord(ctx context.Context, userID string) error
}

// GrantStore is an append-only feather ledger. Implementations never update or
// delete a grant. Listing methods skip grants that cannot be decoded.
type GrantStore interface {
	AppendGrant(ctx context.Context, grant *models.FeatherGrant) error
	// ListGrants returns every grant of userID in insertion order.
	ListGrants(ctx context.Context, userID string) ([]*models.FeatherGrant, error)
	// ListRecentGrants returns at most limit grants, newest first.
	ListRecentGrants(ctx context.Context, userID string, limit int) ([]*models.FeatherGrant, error)
	// ListGrantsByCategory returns grants whose category matches exactly, in insertion order.
	ListGrantsByCategory(ctx context.Context, userID, category string) ([]*models.FeatherGrant, error)
}

// UsageLogStore keeps the audit trail of usage record changes.
type UsageLogStore interface {
	AppendUsageLog(ctx context.Context, log *models.UsageLog) error
	ListUsageLogs(ctx context.Context, userID string, limit int) ([]*models.UsageLog, error)
}
