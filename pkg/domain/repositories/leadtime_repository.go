package repositories

import "github.com/inboundlogistics/transplan/pkg/domain/entities"

// LeadTimeRepository provides read-only access to transit durations
type LeadTimeRepository interface {
	// GetBaseline looks up the (country of origin, mode) baseline lead time
	GetBaseline(origin string, mode entities.TransportMode) (*entities.LeadTime, error)
	// GetOverride looks up the (sku, mode) override, which takes precedence
	// over the baseline when present and active
	GetOverride(pn entities.PartNumber, mode entities.TransportMode) (*entities.LeadTimeOverride, error)
}
