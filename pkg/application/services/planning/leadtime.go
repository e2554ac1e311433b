package planning

import (
	"fmt"
	"time"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
	"github.com/inboundlogistics/transplan/pkg/domain/services"
)

// LeadTimeResolver resolves transit durations with override precedence:
// explicit manual days on the line, then the active (sku, mode) override,
// then the (country of origin, mode) baseline.
type LeadTimeResolver struct {
	repo repositories.LeadTimeRepository
}

// NewLeadTimeResolver creates a resolver over a lead time snapshot
func NewLeadTimeResolver(repo repositories.LeadTimeRepository) *LeadTimeResolver {
	return &LeadTimeResolver{repo: repo}
}

type leadTimeKey struct {
	pn     entities.PartNumber
	origin string
	mode   entities.TransportMode
	manual int
}

// Resolve returns the lead time in days for the line's SKU and the given
// mode. The country of origin is the line's override when set, else the
// SKU's default. A NotFoundError means the mode has no lead time anywhere
// and must be excluded from feasibility evaluation, not treated as fatal.
func (r *LeadTimeResolver) Resolve(line *entities.DemandLine, sku *entities.SKU, mode entities.TransportMode) (int, error) {
	origin := line.OriginOverride
	if origin == "" {
		origin = sku.DefaultOrigin
	}
	key := leadTimeKey{pn: sku.PartNumber, origin: origin, mode: mode, manual: line.ManualLeadDays}

	days, ok := services.ResolveLayered(key, r.manualLayer, r.overrideLayer, r.baselineLayer)
	if !ok {
		return 0, &entities.NotFoundError{Kind: "lead time", Key: fmt.Sprintf("%s/%s/%s", sku.PartNumber, origin, mode)}
	}
	return days, nil
}

func (r *LeadTimeResolver) manualLayer(key leadTimeKey) (int, bool) {
	if key.manual > 0 {
		return key.manual, true
	}
	return 0, false
}

func (r *LeadTimeResolver) overrideLayer(key leadTimeKey) (int, bool) {
	o, err := r.repo.GetOverride(key.pn, key.mode)
	if err != nil || !o.Active {
		return 0, false
	}
	return o.Days, true
}

func (r *LeadTimeResolver) baselineLayer(key leadTimeKey) (int, bool) {
	lt, err := r.repo.GetBaseline(key.origin, key.mode)
	if err != nil {
		return 0, false
	}
	return lt.Days, true
}

// ShipBy computes the latest feasible ship date for a need date and lead time
func ShipBy(needDate time.Time, leadDays int) time.Time {
	return needDate.AddDate(0, 0, -leadDays)
}

// Feasible reports whether a ship-by date is still reachable from the
// planning reference date
func Feasible(shipBy, reference time.Time) bool {
	return !shipBy.Before(reference)
}
