package planning

import (
	"sort"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

// RankRecommendations orders the options for one tranche into a total order
// and assigns ranks starting at 1.
//
// Order: a manual override mode always ranks first regardless of cost — it
// is an operator decision the ranking must not second-guess. Then feasible
// before infeasible; within feasible, ascending cost (priced before
// unpriced); ties broken by descending utilization, then earliest ship-by
// date, then mode and equipment code for determinism.
func RankRecommendations(recs []entities.Recommendation, manual entities.TransportMode) []entities.Recommendation {
	ranked := make([]entities.Recommendation, len(recs))
	copy(ranked, recs)

	for i := range ranked {
		ranked[i].ManualOverride = manual != "" && ranked[i].Mode == manual
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.ManualOverride != b.ManualOverride {
			return a.ManualOverride
		}
		if a.Feasible != b.Feasible {
			return a.Feasible
		}
		if a.Priced != b.Priced {
			return a.Priced
		}
		if a.Priced && b.Priced && !a.Cost.Equal(b.Cost) {
			return a.Cost.LessThan(b.Cost)
		}
		if a.Utilization != b.Utilization {
			return a.Utilization > b.Utilization
		}
		if !a.ShipBy.Equal(b.ShipBy) {
			return a.ShipBy.Before(b.ShipBy)
		}
		if a.Mode != b.Mode {
			return a.Mode < b.Mode
		}
		return a.Equipment < b.Equipment
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
