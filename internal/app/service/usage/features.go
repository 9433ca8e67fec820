package usage

import (
	"context"

	"github.com/samber/lo"

	"github.com/fatflowers/wellbeing/pkg/types"
)

// Feature is one entry of the premium catalog as seen by an installation.
// Limit is the free-tier allowance for metered features when locked.
type Feature struct {
	ID       types.PremiumFeature `json:"id"`
	Unlocked bool                 `json:"unlocked"`
	Limit    int                  `json:"limit,omitempty"`
}

// Features lists the premium catalog with the installation's unlock state.
func (t *Tracker) Features(ctx context.Context, userID string) []Feature {
	premium := t.IsPremiumActive(ctx, userID)
	return lo.Map(types.PremiumFeatures, func(id types.PremiumFeature, _ int) Feature {
		f := Feature{ID: id, Unlocked: premium}
		if premium {
			return f
		}
		switch id {
		case types.PremiumFeatureUnlimitedComics:
			f.Limit = t.policy.MonthlyComicLimit
		case types.PremiumFeatureAllBreathingExercises:
			f.Limit = t.policy.FreeBreathingExercises
		case types.PremiumFeatureUnlimitedJournal:
			f.Limit = t.policy.JournalEntryLimit
		}
		return f
	})
}
