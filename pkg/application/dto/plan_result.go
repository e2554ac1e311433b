package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

// PlanError is one captured per-line error annotation. Errors never abort
// the run; the caller always sees a complete result set.
type PlanError struct {
	Code    string                 `json:"code"`
	Mode    entities.TransportMode `json:"mode,omitempty"`
	Message string                 `json:"message"`
}

// Error codes attached to line results
const (
	ErrConfiguration       = "CONFIGURATION"
	ErrValidation          = "VALIDATION"
	ErrNotFound            = "NOT_FOUND"
	ErrAmbiguousRate       = "AMBIGUOUS_RATE"
	ErrAllocationShortfall = "ALLOCATION_SHORTFALL"
)

// TrancheResult is one tranche with its ranked recommendation set
type TrancheResult struct {
	Tranche         entities.Tranche          `json:"tranche"`
	Recommendations []entities.Recommendation `json:"recommendations"`
}

// LineResult is the complete planning outcome for one demand line
type LineResult struct {
	DemandLine    entities.DemandLineID `json:"demand_line"`
	PartNumber    entities.PartNumber   `json:"part_number"`
	RequiredUnits decimal.Decimal       `json:"required_units"`
	ShippedUnits  decimal.Decimal       `json:"shipped_units"`
	ExcessUnits   decimal.Decimal       `json:"excess_units"`
	TotalPacks    int                   `json:"total_packs"`
	Tranches      []TrancheResult       `json:"tranches"`
	Errors        []PlanError           `json:"errors,omitempty"`
}

// PlanResult contains the complete output of one planning run
type PlanResult struct {
	ReferenceDate time.Time                `json:"reference_date"`
	Lines         []LineResult             `json:"lines"`
	Shipments     []entities.ShipmentRow   `json:"shipments"`
	Excess        []entities.ExcessRow     `json:"excess"`
	RateWarnings  [][2]entities.RateCardID `json:"rate_warnings,omitempty"`
}
