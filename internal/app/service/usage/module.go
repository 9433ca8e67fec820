package usage

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	usagelog "github.com/fatflowers/wellbeing/internal/app/service/usage_log"
	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/pkg/config"
	"github.com/fatflowers/wellbeing/pkg/metrics"
)

func newTracker(store storage.Store, cfg *config.Config, log *zap.SugaredLogger, m *metrics.Business, audit *usagelog.Service) *Tracker {
	return New(store.Usage(), cfg.Entitlement, log, WithMetrics(m), WithAuditor(audit))
}

var Module = fx.Options(
	fx.Provide(newTracker),
)
