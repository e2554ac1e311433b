package memory

import (
	"fmt"
	"strings"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
)

// LeadTimeRepository provides in-memory lead time storage
type LeadTimeRepository struct {
	baselines map[string]entities.LeadTime
	overrides map[string]entities.LeadTimeOverride
}

// NewLeadTimeRepository creates a new in-memory lead time repository
func NewLeadTimeRepository() *LeadTimeRepository {
	return &LeadTimeRepository{
		baselines: make(map[string]entities.LeadTime),
		overrides: make(map[string]entities.LeadTimeOverride),
	}
}

// Verify interface compliance
var _ repositories.LeadTimeRepository = (*LeadTimeRepository)(nil)

// LoadBaselines loads baseline lead times into the repository
func (r *LeadTimeRepository) LoadBaselines(baselines []*entities.LeadTime) error {
	for _, lt := range baselines {
		r.AddBaseline(*lt)
	}
	return nil
}

// LoadOverrides loads SKU-level lead time overrides into the repository
func (r *LeadTimeRepository) LoadOverrides(overrides []*entities.LeadTimeOverride) error {
	for _, o := range overrides {
		r.AddOverride(*o)
	}
	return nil
}

// AddBaseline adds a baseline (country of origin, mode) lead time
func (r *LeadTimeRepository) AddBaseline(lt entities.LeadTime) {
	r.baselines[baselineKey(lt.Origin, lt.Mode)] = lt
}

// AddOverride adds a (sku, mode) lead time override
func (r *LeadTimeRepository) AddOverride(o entities.LeadTimeOverride) {
	r.overrides[overrideKey(o.PartNumber, o.Mode)] = o
}

// GetBaseline looks up the (country of origin, mode) baseline lead time
func (r *LeadTimeRepository) GetBaseline(origin string, mode entities.TransportMode) (*entities.LeadTime, error) {
	lt, exists := r.baselines[baselineKey(origin, mode)]
	if !exists {
		return nil, &entities.NotFoundError{Kind: "lead time", Key: fmt.Sprintf("%s/%s", origin, mode)}
	}
	return &lt, nil
}

// GetOverride looks up the (sku, mode) override
func (r *LeadTimeRepository) GetOverride(pn entities.PartNumber, mode entities.TransportMode) (*entities.LeadTimeOverride, error) {
	o, exists := r.overrides[overrideKey(pn, mode)]
	if !exists {
		return nil, &entities.NotFoundError{Kind: "lead time override", Key: fmt.Sprintf("%s/%s", pn, mode)}
	}
	return &o, nil
}

func baselineKey(origin string, mode entities.TransportMode) string {
	return strings.ToUpper(origin) + "|" + strings.ToUpper(string(mode))
}

func overrideKey(pn entities.PartNumber, mode entities.TransportMode) string {
	return string(pn) + "|" + strings.ToUpper(string(mode))
}
