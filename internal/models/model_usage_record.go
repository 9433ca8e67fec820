package models

import "time"

// UsageSchemaVersion is the persisted layout version of UsageRecord. Records
// carrying any other version are treated as malformed and replaced by defaults.
const UsageSchemaVersion = 1

// UsageRecord stores free-tier consumption and premium state of one installation.
// Use Expired() to detect a premium grant that has lapsed.
type UsageRecord struct {
	UserID        string `gorm:"column:user_id;type:varchar(64);primaryKey" json:"userId"`
	SchemaVersion int    `gorm:"column:schema_version;not null;default:1" json:"schemaVersion"`
	// ComicsGenerated counts comic generations in the current billing month.
	ComicsGenerated int `gorm:"column:comics_generated;not null;default:0" json:"comicsGenerated"`
	// BreathingExercisesCompleted is tracked per month but never gated.
	BreathingExercisesCompleted int `gorm:"column:breathing_exercises_completed;not null;default:0" json:"breathingExercisesCompleted"`
	// LastResetDate is when the monthly counters were last zeroed.
	LastResetDate time.Time `gorm:"column:last_reset_date;not null" json:"lastResetDate"`
	IsPremium     bool      `gorm:"column:is_premium;not null;default:false" json:"isPremium"`
	// PremiumExpiryDate is nil when the installation is free tier or premium never lapses.
	PremiumExpiryDate *time.Time `gorm:"column:premium_expiry_date" json:"premiumExpiryDate,omitempty"`
	UpdatedAt         time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (UsageRecord) TableName() string {
	return "usage_record"
}

// NewUsageRecord returns the zero-valued record a fresh installation starts with.
func NewUsageRecord(userID string, now time.Time) *UsageRecord {
	return &UsageRecord{
		UserID:        userID,
		SchemaVersion: UsageSchemaVersion,
		LastResetDate: now,
	}
}

// Expired reports whether a premium grant with an expiry date has lapsed at now.
func (r *UsageRecord) Expired(now time.Time) bool {
	return r != nil &&
		r.IsPremium &&
		r.PremiumExpiryDate != nil &&
		r.PremiumExpiryDate.Before(now)
}

// SameMonth reports whether now falls into the billing month of LastResetDate,
// comparing calendar (year, month) in loc.
func (r *UsageRecord) SameMonth(now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ly, lm, _ := r.LastResetDate.In(loc).Date()
	ny, nm, _ := now.In(loc).Date()
	return ly == ny && lm == nm
}

// Clone returns a deep copy, used for before/after audit snapshots.
func (r *UsageRecord) Clone() *UsageRecord {
	if r == nil {
		return nil
	}
	cp := *r
	if r.PremiumExpiryDate != nil {
		exp := *r.PremiumExpiryDate
		cp.PremiumExpiryDate = &exp
	}
	return &cp
}
