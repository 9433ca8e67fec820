package statistics

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/fatflowers/wellbeing/internal/app/service/feather"
	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/fatflowers/wellbeing/pkg/config"
)

// StatisticType names one chart of the impact page.
type StatisticType string

const (
	StatisticTypeFeathersByCategory StatisticType = "feathers_by_category"
	StatisticTypeDailyFeathers      StatisticType = "daily_feathers"
	StatisticTypeTotalFeathers      StatisticType = "total_feathers"
)

type ImpactStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type ImpactStatisticRequest struct {
	// Categories restricts every data item to these grant categories. Empty means all.
	Categories []string                   `json:"categories"`
	DataItems  []*ImpactStatisticDataItem `json:"data_items"`
}

// ImpactStatisticResponseDataItem is one point of a chart. Value is the feather
// sum and Value2 the number of grants behind it.
type ImpactStatisticResponseDataItem struct {
	Date   string `json:"date,omitempty"`
	Label  string `json:"label,omitempty"`
	Value  int64  `json:"value"`
	Value2 int64  `json:"value2"`
}

type ImpactStatisticResponse struct {
	DataItems map[StatisticType][]ImpactStatisticResponseDataItem `json:"data_items"`
}

// GrantSource is the read side of the feather ledger.
type GrantSource interface {
	AllGrants(ctx context.Context, userID string) ([]*models.FeatherGrant, error)
}

// Service derives impact statistics from the full ledger. Nothing is cached,
// so every chart agrees with TotalFeathers.
type Service struct {
	grants GrantSource
	loc    *time.Location
}

func New(grants GrantSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{grants: grants, loc: loc}
}

func (s *Service) load(ctx context.Context, userID string, request *ImpactStatisticRequest) ([]*models.FeatherGrant, error) {
	grants, err := s.grants.AllGrants(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(request.Categories) == 0 {
		return grants, nil
	}
	return lo.Filter(grants, func(g *models.FeatherGrant, _ int) bool {
		return lo.Contains(request.Categories, g.Category)
	}), nil
}

func (s *Service) getFeathersByCategory(ctx context.Context, userID string, request *ImpactStatisticRequest) ([]ImpactStatisticResponseDataItem, error) {
	grants, err := s.load(ctx, userID, request)
	if err != nil {
		return nil, err
	}
	byCategory := lo.GroupBy(grants, func(g *models.FeatherGrant) string { return g.Category })
	results := lo.MapToSlice(byCategory, func(category string, gs []*models.FeatherGrant) ImpactStatisticResponseDataItem {
		return ImpactStatisticResponseDataItem{
			Label:  category,
			Value:  lo.SumBy(gs, func(g *models.FeatherGrant) int64 { return g.Amount }),
			Value2: int64(len(gs)),
		}
	})
	sort.Slice(results, func(i, j int) bool {
		if results[i].Value != results[j].Value {
			return results[i].Value > results[j].Value
		}
		return results[i].Label < results[j].Label
	})
	return results, nil
}

func (s *Service) getDailyFeathers(ctx context.Context, userID string, request *ImpactStatisticRequest) ([]ImpactStatisticResponseDataItem, error) {
	grants, err := s.load(ctx, userID, request)
	if err != nil {
		return nil, err
	}
	byDate := lo.GroupBy(grants, func(g *models.FeatherGrant) string {
		return g.Timestamp.In(s.loc).Format(time.DateOnly)
	})
	results := lo.MapToSlice(byDate, func(date string, gs []*models.FeatherGrant) ImpactStatisticResponseDataItem {
		return ImpactStatisticResponseDataItem{
			Date:   date,
			Value:  lo.SumBy(gs, func(g *models.FeatherGrant) int64 { return g.Amount }),
			Value2: int64(len(gs)),
		}
	})
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results, nil
}

func (s *Service) getTotalFeathers(ctx context.Context, userID string, request *ImpactStatisticRequest) ([]ImpactStatisticResponseDataItem, error) {
	grants, err := s.load(ctx, userID, request)
	if err != nil {
		return nil, err
	}
	return []ImpactStatisticResponseDataItem{{
		Value:  lo.SumBy(grants, func(g *models.FeatherGrant) int64 { return g.Amount }),
		Value2: int64(len(grants)),
	}}, nil
}

func (s *Service) getImpactStatistic(ctx context.Context, userID string, request *ImpactStatisticRequest, dataItem *ImpactStatisticDataItem) ([]ImpactStatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeFeathersByCategory:
		return s.getFeathersByCategory(ctx, userID, request)
	case StatisticTypeDailyFeathers:
		return s.getDailyFeathers(ctx, userID, request)
	case StatisticTypeTotalFeathers:
		return s.getTotalFeathers(ctx, userID, request)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", dataItem.ID)
	}
}

// GetImpactStatistic computes the requested data items concurrently. The first
// failing item cancels the others and its error is returned.
func (s *Service) GetImpactStatistic(ctx context.Context, userID string, request *ImpactStatisticRequest) (*ImpactStatisticResponse, error) {
	if request == nil {
		request = &ImpactStatisticRequest{}
	}
	var mu sync.Mutex
	results := make(map[StatisticType][]ImpactStatisticResponseDataItem, len(request.DataItems))

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range request.DataItems {
		if item == nil {
			continue
		}
		g.Go(func() error {
			res, err := s.getImpactStatistic(gctx, userID, request, item)
			if err != nil {
				return err
			}
			mu.Lock()
			results[item.ID] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ImpactStatisticResponse{DataItems: results}, nil
}

func newService(ledger *feather.Ledger, cfg *config.Config) *Service {
	return New(ledger, cfg.Entitlement.Location())
}

var Module = fx.Options(
	fx.Provide(newService),
)
