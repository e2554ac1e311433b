package planning

import (
	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

// PackConversion is the result of converting a raw demand quantity into
// whole physical packs
type PackConversion struct {
	RequiredUnits decimal.Decimal // raw quantity normalized to pack units
	Packs         int
	ShippedUnits  decimal.Decimal
	ExcessUnits   decimal.Decimal
	// WeightAsUnits is set when a weight-based quantity had no usable
	// weight-per-unit and was treated as already unit-based
	WeightAsUnits bool
}

// RoundedOrderPacks converts required units to whole packs.
//
// Algorithm:
//  1. Convert units to raw packs and round up.
//  2. Enforce the minimum order quantity.
//  3. Round up again to the increment multiple.
//
// Rounding is always upward; under-ordering is never produced.
func RoundedOrderPacks(requiredUnits decimal.Decimal, rule *entities.PackagingRule) (int, error) {
	if rule.UnitsPerPack.LessThanOrEqual(decimal.Zero) {
		return 0, &entities.ConfigurationError{
			PartNumber: rule.PartNumber,
			Reason:     "units_per_pack must be greater than 0",
		}
	}

	packs := int(requiredUnits.Div(rule.UnitsPerPack).Ceil().IntPart())
	if min := rule.MinOrderPacks; packs < min {
		packs = min
	}
	if packs < 1 {
		packs = 1
	}

	inc := rule.IncrementPacks
	if inc < 1 {
		inc = 1
	}
	if rem := packs % inc; rem != 0 {
		packs += inc - rem
	}
	return packs, nil
}

// ConvertDemand converts a raw demand quantity in the given unit of measure
// into whole packs under the rule's MOQ and increment policy. Weight-based
// quantities convert through the rule's weight per unit; when that weight is
// missing the quantity is treated as already unit-based and flagged.
func ConvertDemand(rawQty decimal.Decimal, uom entities.UnitOfMeasure, rule *entities.PackagingRule) (*PackConversion, error) {
	if rawQty.IsNegative() {
		return nil, &entities.ValidationError{Field: "raw_qty", Reason: "must not be negative"}
	}

	requiredUnits := rawQty
	weightAsUnits := false
	if uom == entities.UOMKilogram {
		if rule.WeightPerUnit.GreaterThan(decimal.Zero) {
			requiredUnits = rawQty.Div(rule.WeightPerUnit)
		} else {
			weightAsUnits = true
		}
	}

	packs, err := RoundedOrderPacks(requiredUnits, rule)
	if err != nil {
		return nil, err
	}

	shipped := decimal.NewFromInt(int64(packs)).Mul(rule.UnitsPerPack)
	excess := shipped.Sub(requiredUnits)
	if excess.IsNegative() {
		excess = decimal.Zero
	}

	return &PackConversion{
		RequiredUnits: requiredUnits,
		Packs:         packs,
		ShippedUnits:  shipped,
		ExcessUnits:   excess,
		WeightAsUnits: weightAsUnits,
	}, nil
}
