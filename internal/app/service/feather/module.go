package feather

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/pkg/metrics"
)

func newLedger(store storage.Store, log *zap.SugaredLogger, m *metrics.Business) *Ledger {
	return New(store.Grants(), log, WithMetrics(m))
}

var Module = fx.Options(
	fx.Provide(newLedger),
)
