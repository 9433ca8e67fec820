package models

import (
	"time"

	"github.com/fatflowers/wellbeing/pkg/types"
	"gorm.io/datatypes"
)

// UsageLog records changes to usage records.
// Use case: support and troubleshooting of entitlement complaints.
type UsageLog struct {
	ID     string                  `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID string                  `gorm:"column:user_id;type:varchar(64);index:idx_usage_log_user_id,priority:1;not null" json:"userId"`
	Reason types.UsageChangeReason `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	// Before stores the record before the change; null for a freshly created record.
	Before datatypes.JSONType[*UsageRecord] `gorm:"column:before;type:jsonb" json:"before"`
	// After stores the record after the change; null after a reset.
	After     datatypes.JSONType[*UsageRecord] `gorm:"column:after;type:jsonb" json:"after"`
	CreatedAt time.Time                        `gorm:"column:created_at;index:idx_usage_log_user_id,priority:2" json:"createdAt"`
}

func (UsageLog) TableName() string {
	return "usage_log"
}
