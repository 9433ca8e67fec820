package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const businessSubsystem = "wellbeing"

var featherGrants = &Metric{
	ID:          "featherGrants",
	Name:        "feather_grants_total",
	Description: "Feather grants appended to the ledger, partitioned by category.",
	Type:        "counter_vec",
	Args:        []string{"category"},
}

var feathersAwarded = &Metric{
	ID:          "feathersAwarded",
	Name:        "feathers_awarded_total",
	Description: "Sum of feathers granted, partitioned by category.",
	Type:        "counter_vec",
	Args:        []string{"category"},
}

var grantFailures = &Metric{
	ID:          "grantFailures",
	Name:        "feather_grant_failures_total",
	Description: "Feather grants that could not be persisted.",
	Type:        "counter_vec",
	Args:        []string{"category"},
}

var quotaRejections = &Metric{
	ID:          "quotaRejections",
	Name:        "comic_quota_rejections_total",
	Description: "Comic generations refused because the monthly free quota is used up.",
	Type:        "counter_vec",
	Args:        []string{},
}

var premiumActivations = &Metric{
	ID:          "premiumActivations",
	Name:        "premium_activations_total",
	Description: "Premium activations, partitioned by kind (trial, paid, expired).",
	Type:        "counter_vec",
	Args:        []string{"kind"},
}

var persistFailures = &Metric{
	ID:          "persistFailures",
	Name:        "usage_persist_failures_total",
	Description: "Usage record reads/writes that failed and were degraded to best effort.",
	Type:        "counter_vec",
	Args:        []string{"op"},
}

// Business holds the domain counters. A nil *Business is valid and records nothing,
// so services and tests can run without a registry.
type Business struct {
	featherGrants      *prometheus.CounterVec
	feathersAwarded    *prometheus.CounterVec
	grantFailures      *prometheus.CounterVec
	quotaRejections    *prometheus.CounterVec
	premiumActivations *prometheus.CounterVec
	persistFailures    *prometheus.CounterVec
}

// NewBusiness builds the domain counters and registers them on reg. Registration
// errors are logged, matching how the HTTP metrics handle duplicates.
func NewBusiness(reg prometheus.Registerer, log *zap.SugaredLogger) *Business {
	b := &Business{}
	for _, def := range []*Metric{featherGrants, feathersAwarded, grantFailures, quotaRejections, premiumActivations, persistFailures} {
		c := NewMetric(def, businessSubsystem).(*prometheus.CounterVec)
		if reg != nil {
			if err := reg.Register(c); err != nil {
				if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
					c = are.ExistingCollector.(*prometheus.CounterVec)
				} else if log != nil {
					log.Errorf("%s could not be registered in Prometheus, err=%v", def.Name, err)
				}
			}
		}
		switch def {
		case featherGrants:
			b.featherGrants = c
		case feathersAwarded:
			b.feathersAwarded = c
		case grantFailures:
			b.grantFailures = c
		case quotaRejections:
			b.quotaRejections = c
		case premiumActivations:
			b.premiumActivations = c
		case persistFailures:
			b.persistFailures = c
		}
	}
	return b
}

func (b *Business) GrantRecorded(category string, amount int64) {
	if b == nil {
		return
	}
	b.featherGrants.WithLabelValues(category).Inc()
	b.feathersAwarded.WithLabelValues(category).Add(float64(amount))
}

func (b *Business) GrantFailed(category string) {
	if b == nil {
		return
	}
	b.grantFailures.WithLabelValues(category).Inc()
}

func (b *Business) QuotaRejected() {
	if b == nil {
		return
	}
	b.quotaRejections.WithLabelValues().Inc()
}

func (b *Business) PremiumChanged(kind string) {
	if b == nil {
		return
	}
	b.premiumActivations.WithLabelValues(kind).Inc()
}

func (b *Business) PersistFailed(op string) {
	if b == nil {
		return
	}
	b.persistFailures.WithLabelValues(op).Inc()
}

func newDefaultBusiness(log *zap.SugaredLogger) *Business {
	return NewBusiness(prometheus.DefaultRegisterer, log)
}

var Module = fx.Options(
	fx.Provide(newDefaultBusiness),
)
