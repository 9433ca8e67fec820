package usage_log

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/internal/storage"
	"github.com/fatflowers/wellbeing/pkg/logctx"
	"github.com/fatflowers/wellbeing/pkg/tool"
	"github.com/fatflowers/wellbeing/pkg/types"
)

type Service struct {
	store storage.UsageLogStore
	log   *zap.SugaredLogger
	wg    sync.WaitGroup
}

func New(store storage.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store.UsageLogs(), log: log}
}

// Record asynchronously persists a usage change. Failures are logged only;
// the audit trail never blocks or fails the tracker.
func (s *Service) Record(ctx context.Context, userID string, reason types.UsageChangeReason, before, after *models.UsageRecord) {
	if s == nil {
		return
	}
	entry := &models.UsageLog{
		ID:        tool.GenerateUUIDV7(),
		UserID:    userID,
		Reason:    reason,
		Before:    datatypes.NewJSONType(before.Clone()),
		After:     datatypes.NewJSONType(after.Clone()),
		CreatedAt: time.Now().UTC(),
	}
	// the request context may be cancelled before the write lands
	bg := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.store.AppendUsageLog(bg, entry); err != nil {
			logctx.FromCtx(bg, s.log).Errorf("failed to save usage log: %v", err)
		}
	}()
}

// List returns the newest audit rows of userID.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*models.UsageLog, error) {
	return s.store.ListUsageLogs(ctx, userID, limit)
}

// Flush waits for pending writes.
func (s *Service) Flush() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

func newService(lc fx.Lifecycle, store storage.Store, log *zap.SugaredLogger) *Service {
	s := New(store, log)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			s.Flush()
			return nil
		},
	})
	return s
}

var Module = fx.Options(
	fx.Provide(newService),
)
