package entities

import "fmt"

// ConfigurationError indicates missing or invalid packaging/reference
// configuration. Fatal to the affected SKU's planning, never to the run.
type ConfigurationError struct {
	PartNumber PartNumber
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.PartNumber != "" {
		return fmt.Sprintf("configuration error for %s: %s", e.PartNumber, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ValidationError indicates malformed numeric or geometric input. The
// offending pack rule or line is excluded rather than estimated as zero.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError indicates missing reference data. Missing lead-time or rate
// data degrades feasibility for the affected mode only.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// AmbiguousRateError indicates overlapping rate cards that cannot be
// tie-broken. A data-quality defect: never silently resolved by an
// arbitrary pick.
type AmbiguousRateError struct {
	Lane      Lane
	Scope     ServiceScope
	Equipment EquipmentCode
	Cards     []RateCardID
}

func (e *AmbiguousRateError) Error() string {
	return fmt.Sprintf("ambiguous rate cards %v for %s-%s %s %s",
		e.Cards, e.Lane.OriginCode, e.Lane.DestCode, e.Scope, e.Equipment)
}

// AllocationShortfall indicates capacity could not satisfy a demand line's
// full pack requirement. Reported to the caller, never dropped.
type AllocationShortfall struct {
	DemandLine       DemandLineID
	UnallocatedPacks int
}

func (e *AllocationShortfall) Error() string {
	return fmt.Sprintf("allocation shortfall on %s: %d packs unallocated", e.DemandLine, e.UnallocatedPacks)
}
