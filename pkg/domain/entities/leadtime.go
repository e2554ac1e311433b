package entities

// LeadTime is the baseline transit duration for a (country of origin, mode) pair
type LeadTime struct {
	Origin string
	Mode   TransportMode
	Days   int
}

// LeadTimeOverride replaces the baseline lead time for a specific SKU and mode
type LeadTimeOverride struct {
	PartNumber PartNumber
	Mode       TransportMode
	Days       int
	Active     bool
}
