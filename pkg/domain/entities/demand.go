package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandLineID identifies a single planning request
type DemandLineID string

// DemandLine is one planning request: a raw required quantity for a SKU with
// a need date. Optional overrides narrow how the line is planned. Lines are
// immutable once consumed by a planning run.
type DemandLine struct {
	ID             DemandLineID
	PartNumber     PartNumber
	NeedDate       time.Time
	RawQty         decimal.Decimal
	UnitOfMeasure  UnitOfMeasure // empty = SKU default
	OriginOverride string        // country of origin override
	ManualMode     TransportMode // operator-selected mode, ranked first when set
	PackRuleID     PackRuleID    // non-default packaging rule, empty = default
	ManualLeadDays int           // explicit lead-time override in days, 0 = none
	Lane           Lane          // zero value = use the run's default lane
}

// Tranche is a schedulable slice of a demand line's pack requirement.
// Tranches are recomputed every planning run and never persisted.
type Tranche struct {
	DemandLine    DemandLineID
	SequenceIndex int
	PackQty       int
	IsExcessCarry bool
	Window        string // allocation window that satisfied the tranche
	Resolved      bool
}
