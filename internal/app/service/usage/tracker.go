package usage

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/pkg/config"
	"github.com/fatflowers/wellbeing/pkg/logctx"
	"github.com/fatflowers/wellbeing/pkg/metrics"
	"github.com/fatflowers/wellbeing/pkg/types"
)

// Unlimited is returned by ComicsRemainingThisMonth for premium installations.
const Unlimited = -1

// daysPerFractionalMonth converts the fractional part of a premium duration.
// 0.25 months is exactly a 7-day trial.
const daysPerFractionalMonth = 28

var ErrInvalidDuration = errors.New("usage: premium duration must be a positive number of months")

// Auditor receives every persisted change of a usage record.
type Auditor interface {
	Record(ctx context.Context, userID string, reason types.UsageChangeReason, before, after *models.UsageRecord)
}

// Snapshot is the dashboard view of one installation's entitlement.
type Snapshot struct {
	ComicsGenerated             int        `json:"comicsGenerated"`
	ComicsLimit                 int        `json:"comicsLimit"`
	ComicsRemaining             int        `json:"comicsRemaining"`
	BreathingExercisesAvailable int        `json:"breathingExercisesAvailable"`
	IsPremium                   bool       `json:"isPremium"`
	PremiumExpiryDate           *time.Time `json:"premiumExpiryDate,omitempty"`
}

// Tracker gates free-tier usage and tracks premium state per installation.
//
// Persistence is best effort: read failures and malformed records fall back to
// a fresh record, write failures are logged and counted but never returned.
// Every operation holds the installation's lock for its whole read-modify-write,
// so concurrent callers cannot exceed the monthly quota.
type Tracker struct {
	store   storage.UsageStore
	policy  config.EntitlementConfig
	loc     *time.Location
	log     *zap.SugaredLogger
	metrics *metrics.Business
	audit   Auditor
	now     func() time.Time
	locks   stripedLocks
}

type Option func(*Tracker)

// WithClock replaces time.Now, used by tests to move across month boundaries.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithMetrics(m *metrics.Business) Option {
	return func(t *Tracker) { t.metrics = m }
}

func WithAuditor(a Auditor) Option {
	return func(t *Tracker) { t.audit = a }
}

func New(store storage.UsageStore, policy config.EntitlementConfig, log *zap.SugaredLogger, opts ...Option) *Tracker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	t := &Tracker{
		store:  store,
		policy: policy,
		loc:    policy.Location(),
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsPremiumActive reports whether the installation holds unexpired premium.
// An expired grant is cleared and persisted before returning false.
func (t *Tracker) IsPremiumActive(ctx context.Context, userID string) bool {
	defer t.locks.lock(userID)()
	return t.prepare(ctx, userID, t.clock()).IsPremium
}

// ComicsRemainingThisMonth returns the free comics left, or Unlimited for premium.
func (t *Tracker) ComicsRemainingThisMonth(ctx context.Context, userID string) int {
	defer t.locks.lock(userID)()
	return t.comicsRemaining(t.prepare(ctx, userID, t.clock()))
}

func (t *Tracker) CanGenerateComic(ctx context.Context, userID string) bool {
	defer t.locks.lock(userID)()
	rec := t.prepare(ctx, userID, t.clock())
	return rec.IsPremium || t.comicsRemaining(rec) > 0
}

// RecordComicGenerated consumes one free comic. It returns false, without
// mutating anything, when the monthly quota is used up; callers should show the
// upgrade prompt rather than retry. Premium installations are never counted.
func (t *Tracker) RecordComicGenerated(ctx context.Context, userID string) bool {
	defer t.locks.lock(userID)()
	now := t.clock()
	rec := t.prepare(ctx, userID, now)
	if rec.IsPremium {
		return true
	}
	if rec.ComicsGenerated >= t.policy.MonthlyComicLimit {
		t.metrics.QuotaRejected()
		return false
	}
	before := rec.Clone()
	rec.ComicsGenerated++
	t.save(ctx, types.UsageChangeReasonComicGenerated, before, rec)
	return true
}

// RecordBreathingCompleted counts a finished breathing exercise and returns the
// new monthly count. Breathing is tracked but never gated.
func (t *Tracker) RecordBreathingCompleted(ctx context.Context, userID string) int {
	defer t.locks.lock(userID)()
	rec := t.prepare(ctx, userID, t.clock())
	before := rec.Clone()
	rec.BreathingExercisesCompleted++
	t.save(ctx, types.UsageChangeReasonBreathingCompleted, before, rec)
	return rec.BreathingExercisesCompleted
}

func (t *Tracker) BreathingExercisesAvailable(ctx context.Context, userID string) int {
	defer t.locks.lock(userID)()
	return t.breathingAvailable(t.prepare(ctx, userID, t.clock()))
}

// IsBreathingExerciseLocked reports whether the exercise at the zero-based
// catalog index is outside the installation's tier.
func (t *Tracker) IsBreathingExerciseLocked(ctx context.Context, userID string, index int) bool {
	if index < 0 {
		return true
	}
	return index >= t.BreathingExercisesAvailable(ctx, userID)
}

// ActivatePremium grants premium for months from now and returns the expiry.
// Fractional months are allowed: whole months follow the calendar and the
// remainder counts 28 days per month.
func (t *Tracker) ActivatePremium(ctx context.Context, userID string, months float64) (time.Time, error) {
	return t.activate(ctx, userID, months, types.UsageChangeReasonPremiumActivated, "paid")
}

// StartFreeTrial activates premium for the configured trial duration.
func (t *Tracker) StartFreeTrial(ctx context.Context, userID string) (time.Time, error) {
	return t.activate(ctx, userID, t.policy.TrialMonths, types.UsageChangeReasonTrialStarted, "trial")
}

func (t *Tracker) activate(ctx context.Context, userID string, months float64, reason types.UsageChangeReason, kind string) (time.Time, error) {
	if months <= 0 || math.IsNaN(months) || math.IsInf(months, 0) {
		return time.Time{}, ErrInvalidDuration
	}
	defer t.locks.lock(userID)()
	now := t.clock()
	rec := t.prepare(ctx, userID, now)

	before := rec.Clone()
	expiry := addMonths(now, months, t.loc)
	rec.IsPremium = true
	rec.PremiumExpiryDate = &expiry
	t.save(ctx, reason, before, rec)
	t.metrics.PremiumChanged(kind)

	logctx.FromCtx(ctx, t.log).Infow("premium activated", "user_id", userID, "kind", kind, "months", months, "expires_at", expiry)
	return expiry, nil
}

// Snapshot returns the post-reset, post-expiry view used by dashboards.
func (t *Tracker) Snapshot(ctx context.Context, userID string) *Snapshot {
	defer t.locks.lock(userID)()
	rec := t.prepare(ctx, userID, t.clock())
	snap := &Snapshot{
		ComicsGenerated:             rec.ComicsGenerated,
		ComicsLimit:                 t.policy.MonthlyComicLimit,
		ComicsRemaining:             t.comicsRemaining(rec),
		BreathingExercisesAvailable: t.breathingAvailable(rec),
		IsPremium:                   rec.IsPremium,
	}
	if rec.PremiumExpiryDate != nil {
		exp := *rec.PremiumExpiryDate
		snap.PremiumExpiryDate = &exp
	}
	return snap
}

// ResetAll discards the installation's record; the next read starts from defaults.
func (t *Tracker) ResetAll(ctx context.Context, userID string) {
	defer t.locks.lock(userID)()
	before, _ := t.read(ctx, userID)
	if err := t.store.DeleteUsageRecord(ctx, userID); err != nil {
		t.metrics.PersistFailed("delete")
		logctx.FromCtx(ctx, t.log).Errorw("failed to reset usage record", "user_id", userID, "err", err)
		return
	}
	if t.audit != nil && before != nil {
		t.audit.Record(ctx, userID, types.UsageChangeReasonReset, before, nil)
	}
}

func (t *Tracker) clock() time.Time {
	return t.now().UTC()
}

// prepare loads the record and applies the monthly reset and expiry checks,
// persisting each correction together with the fields it touches.
func (t *Tracker) prepare(ctx context.Context, userID string, now time.Time) *models.UsageRecord {
	rec := t.load(ctx, userID, now)

	if !rec.SameMonth(now, t.loc) {
		before := rec.Clone()
		rec.ComicsGenerated = 0
		rec.BreathingExercisesCompleted = 0
		rec.LastResetDate = now
		t.save(ctx, types.UsageChangeReasonMonthlyReset, before, rec)
	}
	if rec.Expired(now) {
		before := rec.Clone()
		rec.IsPremium = false
		rec.PremiumExpiryDate = nil
		t.save(ctx, types.UsageChangeReasonPremiumExpired, before, rec)
		t.metrics.PremiumChanged("expired")
	}
	return rec
}

// read returns the stored record, or nil when there is none or it is unusable.
func (t *Tracker) read(ctx context.Context, userID string) (*models.UsageRecord, error) {
	rec, err := t.store.GetUsageRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec.UserID = userID
	return rec, nil
}

func (t *Tracker) load(ctx context.Context, userID string, now time.Time) *models.UsageRecord {
	rec, err := t.read(ctx, userID)
	switch {
	case err == nil:
		return rec
	case errors.Is(err, storage.ErrNotFound):
	case errors.Is(err, storage.ErrMalformed):
		logctx.FromCtx(ctx, t.log).Warnw("discarding malformed usage record", "user_id", userID, "err", err)
	default:
		t.metrics.PersistFailed("load")
		logctx.FromCtx(ctx, t.log).Errorw("failed to load usage record, using defaults", "user_id", userID, "err", err)
	}
	return models.NewUsageRecord(userID, now)
}

func (t *Tracker) save(ctx context.Context, reason types.UsageChangeReason, before, after *models.UsageRecord) {
	if err := t.store.SaveUsageRecord(ctx, after); err != nil {
		t.metrics.PersistFailed("save")
		logctx.FromCtx(ctx, t.log).Errorw("failed to save usage record", "user_id", after.UserID, "reason", reason, "err", err)
		return
	}
	if t.audit != nil {
		t.audit.Record(ctx, after.UserID, reason, before, after)
	}
}

func (t *Tracker) comicsRemaining(rec *models.UsageRecord) int {
	if rec.IsPremium {
		return Unlimited
	}
	return max(0, t.policy.MonthlyComicLimit-rec.ComicsGenerated)
}

func (t *Tracker) breathingAvailable(rec *models.UsageRecord) int {
	if rec.IsPremium {
		return t.policy.PremiumBreathingExercises
	}
	return t.policy.FreeBreathingExercises
}

// addMonths adds whole calendar months in loc, then the fractional remainder
// at daysPerFractionalMonth days per month.
func addMonths(from time.Time, months float64, loc *time.Location) time.Time {
	whole, frac := math.Modf(months)
	out := from.In(loc).AddDate(0, int(whole), 0)
	out = out.Add(time.Duration(frac * daysPerFractionalMonth * float64(24*time.Hour)))
	return out.UTC()
}
