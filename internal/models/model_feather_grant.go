package models

import "time"

// FeatherGrant is one immutable reward event in an installation's ledger.
// The persisted field names follow the client ledger layout (id, timestamp,
// type, amount, description).
type FeatherGrant struct {
	ID     string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;index:idx_feather_grant_user_ts,priority:1;index:idx_feather_grant_user_type,priority:1" json:"userId"`
	// Timestamp is when the grant was recorded.
	Timestamp time.Time `gorm:"column:timestamp;not null;index:idx_feather_grant_user_ts,priority:2" json:"timestamp"`
	// Category is the free-form grant reason, e.g. task_completion or bonus.
	Category    string  `gorm:"column:type;type:varchar(64);not null;index:idx_feather_grant_user_type,priority:2" json:"type"`
	Amount      int64   `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Description *string `gorm:"column:description;type:text" json:"description,omitempty"`
}

func (FeatherGrant) TableName() string {
	return "feather_grant"
}

// DescriptionText returns the description or "" when absent.
func (g *FeatherGrant) DescriptionText() string {
	if g == nil || g.Description == nil {
		return ""
	}
	return *g.Description
}

// NewerThan orders grants newest-first: later timestamp wins, ids break ties.
func (g *FeatherGrant) NewerThan(o *FeatherGrant) bool {
	if !g.Timestamp.Equal(o.Timestamp) {
		return g.Timestamp.After(o.Timestamp)
	}
	return g.ID > o.ID
}
