package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// NodeType categorizes a lane endpoint
type NodeType string

const (
	NodePort    NodeType = "PORT"
	NodeCity    NodeType = "CITY"
	NodeDoor    NodeType = "DOOR"
	NodeCountry NodeType = "COUNTRY"
)

// Lane is a typed origin/destination pair
type Lane struct {
	OriginType NodeType
	OriginCode string
	DestType   NodeType
	DestCode   string
}

// IsZero reports whether the lane is unset
func (l Lane) IsZero() bool {
	return l.OriginCode == "" && l.DestCode == ""
}

// ServiceScope describes whether the origin/destination legs include door service
type ServiceScope string

const (
	ScopePortToPort ServiceScope = "P2P"
	ScopePortToDoor ServiceScope = "P2D"
	ScopeDoorToPort ServiceScope = "D2P"
	ScopeDoorToDoor ServiceScope = "D2D"
)

// ConditionFlag marks a special handling condition on a shipment
type ConditionFlag string

const (
	CondOverHeight ConditionFlag = "OVER_HEIGHT"
	CondOverWidth  ConditionFlag = "OVER_WIDTH"
	CondReefer     ConditionFlag = "REEFER"
	CondFlatrack   ConditionFlag = "FLATRACK"
	CondDangerous  ConditionFlag = "DG"
)

// RateCardID identifies a rate card
type RateCardID string

// RateCard is an effective-dated contract rate for one lane/scope/equipment/mode.
// Cards for the same lane+scope+equipment should not have overlapping validity
// windows; overlap at rating time is a data-quality defect.
type RateCard struct {
	ID            RateCardID
	Lane          Lane
	Mode          TransportMode
	Equipment     EquipmentCode
	Scope         ServiceScope
	Carrier       string
	Currency      string
	EffectiveFrom time.Time
	EffectiveTo   time.Time // zero = open-ended
	Active        bool
	Conditions    []ConditionFlag
}

// Window returns the card's validity window; a zero "to" means open-ended
func (c *RateCard) Window() (from, to time.Time) {
	return c.EffectiveFrom, c.EffectiveTo
}

// InEffect reports whether the card covers the given rating date,
// using the half-open interval [effective_from, effective_to)
func (c *RateCard) InEffect(on time.Time) bool {
	if on.Before(c.EffectiveFrom) {
		return false
	}
	return c.EffectiveTo.IsZero() || on.Before(c.EffectiveTo)
}

// CoversConditions reports whether the card may price a shipment with the
// given condition flags: either the card declares no conditions, or its
// condition set is a superset of the requested flags.
func (c *RateCard) CoversConditions(flags []ConditionFlag) bool {
	if len(c.Conditions) == 0 {
		return true
	}
	for _, f := range flags {
		found := false
		for _, have := range c.Conditions {
			if have == f {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ChargeType distinguishes base freight from accessorial surcharges
type ChargeType string

const (
	ChargeBase        ChargeType = "BASE"
	ChargeAccessorial ChargeType = "ACCESSORIAL"
)

// ChargeBasis is the multiplier basis for a charge amount
type ChargeBasis string

const (
	BasisFlat      ChargeBasis = "FLAT"
	BasisPerWeight ChargeBasis = "PER_WEIGHT"
	BasisPerVolume ChargeBasis = "PER_VOLUME"
	BasisPerUnit   ChargeBasis = "PER_UNIT"
)

// RateCharge is one priced line on a rate card. BASE charges always apply;
// ACCESSORIAL charges apply only when their condition flag matches the
// shipment. Min/Max clamp the computed amount when non-zero.
type RateCharge struct {
	RateCard      RateCardID
	Code          string
	Name          string
	Type          ChargeType
	Basis         ChargeBasis
	Amount        decimal.Decimal
	Condition     ConditionFlag // empty = unconditional
	MinAmount     decimal.Decimal
	MaxAmount     decimal.Decimal
	EffectiveFrom time.Time // zero = always
	EffectiveTo   time.Time // zero = open-ended
}

// AppliesOn reports whether the charge's own effective window covers the date
func (ch *RateCharge) AppliesOn(on time.Time) bool {
	if !ch.EffectiveFrom.IsZero() && on.Before(ch.EffectiveFrom) {
		return false
	}
	return ch.EffectiveTo.IsZero() || on.Before(ch.EffectiveTo)
}
