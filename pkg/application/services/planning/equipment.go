package planning

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

// LoadEstimate is the cube/weight/equipment result for a pack quantity
// against one equipment preset
type LoadEstimate struct {
	Preset           entities.EquipmentCode
	Mode             entities.TransportMode
	TotalWeight      decimal.Decimal // gross kg
	TotalVolume      decimal.Decimal // m³
	ChargeableWeight decimal.Decimal // kg; equals gross weight for non-air
	PacksFit         int             // packs per equipment unit; 0 for air
	EquipmentCount   int             // 0 for air (continuous capacity)
	Utilization      float64
	WeightDriven     bool
}

// ChargeableWeight returns the air chargeable weight: the greater of the
// actual gross weight and the volumetric weight volume/divisor. The divisor
// is expressed in the preset in m³ per kg.
func ChargeableWeight(actualWeight, volume, divisor decimal.Decimal) decimal.Decimal {
	if divisor.LessThanOrEqual(decimal.Zero) {
		return actualWeight
	}
	volumetric := volume.Div(divisor)
	if volumetric.GreaterThan(actualWeight) {
		return volumetric
	}
	return actualWeight
}

// EstimateLoad computes total cube and weight for the given pack count and
// derives the equipment requirement for the preset. Degenerate pack or
// preset geometry fails with a ValidationError so the rule is excluded from
// estimation rather than silently estimated as zero.
func EstimateLoad(packs int, rule *entities.PackagingRule, preset *entities.EquipmentPreset) (*LoadEstimate, error) {
	if err := validateRuleGeometry(rule); err != nil {
		return nil, err
	}

	packVolume := rule.PackVolume()
	packGross := rule.GrossPackWeight()
	totalVolume := packVolume.Mul(decimal.NewFromInt(int64(packs)))
	totalWeight := packGross.Mul(decimal.NewFromInt(int64(packs)))

	est := &LoadEstimate{
		Preset:           preset.Code,
		Mode:             preset.Mode,
		TotalWeight:      totalWeight,
		TotalVolume:      totalVolume,
		ChargeableWeight: totalWeight,
	}

	// Air capacity is continuous: chargeable weight replaces any
	// equipment-count concept.
	if preset.Mode == entities.ModeAir {
		if preset.MaxPayload.LessThanOrEqual(decimal.Zero) {
			return nil, &entities.ValidationError{
				Field:  "max_payload_kg",
				Reason: fmt.Sprintf("must be > 0 for equipment %s", preset.Code),
			}
		}
		est.ChargeableWeight = ChargeableWeight(totalWeight, totalVolume, preset.VolumetricDivisor)
		util, _ := est.ChargeableWeight.Div(preset.MaxPayload).Float64()
		if util > 1 {
			util = 1
		}
		est.Utilization = util
		est.WeightDriven = true
		return est, nil
	}

	if err := validatePresetGeometry(preset); err != nil {
		return nil, err
	}

	fit, err := packsPerEquipment(rule, preset)
	if err != nil {
		return nil, err
	}
	est.PacksFit = fit

	count := ceilDiv(packs, fit)
	// Capacity-ratio floor: the count can never be below the ceiling of the
	// larger of the cube and payload ratios.
	eqVolume := preset.Volume()
	byVolume := int(totalVolume.Div(eqVolume).Ceil().IntPart())
	byWeight := int(totalWeight.Div(preset.MaxPayload).Ceil().IntPart())
	if byVolume > count {
		count = byVolume
	}
	if byWeight > count {
		count = byWeight
	}
	if count < 1 {
		count = 1
	}
	est.EquipmentCount = count

	countDec := decimal.NewFromInt(int64(count))
	cubeUtil, _ := totalVolume.Div(eqVolume.Mul(countDec)).Float64()
	weightUtil, _ := totalWeight.Div(preset.MaxPayload.Mul(countDec)).Float64()
	if weightUtil >= cubeUtil {
		est.Utilization = weightUtil
		est.WeightDriven = true
	} else {
		est.Utilization = cubeUtil
	}
	return est, nil
}

// EstimateAggregate derives the equipment requirement for already-summed
// cube and weight, used when consolidating tranches into shipments: the
// count is the ceiling of the larger of the cube and payload ratios, since
// partial equipment usage combines across lines.
func EstimateAggregate(totalWeight, totalVolume decimal.Decimal, preset *entities.EquipmentPreset) (*LoadEstimate, error) {
	est := &LoadEstimate{
		Preset:           preset.Code,
		Mode:             preset.Mode,
		TotalWeight:      totalWeight,
		TotalVolume:      totalVolume,
		ChargeableWeight: totalWeight,
	}

	if preset.Mode == entities.ModeAir {
		if preset.MaxPayload.LessThanOrEqual(decimal.Zero) {
			return nil, &entities.ValidationError{
				Field:  "max_payload_kg",
				Reason: fmt.Sprintf("must be > 0 for equipment %s", preset.Code),
			}
		}
		est.ChargeableWeight = ChargeableWeight(totalWeight, totalVolume, preset.VolumetricDivisor)
		util, _ := est.ChargeableWeight.Div(preset.MaxPayload).Float64()
		if util > 1 {
			util = 1
		}
		est.Utilization = util
		est.WeightDriven = true
		return est, nil
	}

	if err := validatePresetGeometry(preset); err != nil {
		return nil, err
	}
	if totalWeight.LessThanOrEqual(decimal.Zero) && totalVolume.LessThanOrEqual(decimal.Zero) {
		return est, nil
	}

	eqVolume := preset.Volume()
	byVolume := int(totalVolume.Div(eqVolume).Ceil().IntPart())
	byWeight := int(totalWeight.Div(preset.MaxPayload).Ceil().IntPart())
	count := byVolume
	if byWeight > count {
		count = byWeight
	}
	if count < 1 {
		count = 1
	}
	est.EquipmentCount = count

	countDec := decimal.NewFromInt(int64(count))
	cubeUtil, _ := totalVolume.Div(eqVolume.Mul(countDec)).Float64()
	weightUtil, _ := totalWeight.Div(preset.MaxPayload.Mul(countDec)).Float64()
	if weightUtil >= cubeUtil {
		est.Utilization = weightUtil
		est.WeightDriven = true
	} else {
		est.Utilization = cubeUtil
	}
	return est, nil
}

// packsPerEquipment computes how many packs fit one equipment unit: a
// floor-grid fit in both footprint orientations, layers limited by height,
// stackability and max stack, bounded by the tighter of grid and payload.
func packsPerEquipment(rule *entities.PackagingRule, preset *entities.EquipmentPreset) (int, error) {
	perLayer := footprintFit(rule.Length, rule.Width, preset.Length, preset.Width)

	layers := 1
	if rule.Stackable {
		layers = int(preset.Height.Div(rule.Height).Floor().IntPart())
		if rule.MaxStack > 0 && layers > rule.MaxStack {
			layers = rule.MaxStack
		}
		if layers < 1 {
			layers = 1
		}
	}

	byGrid := perLayer * layers
	byWeight := int(preset.MaxPayload.Div(rule.GrossPackWeight()).Floor().IntPart())

	fit := byGrid
	if byWeight < fit {
		fit = byWeight
	}
	if fit <= 0 {
		return 0, &entities.ValidationError{
			Field:  "pack_dimensions",
			Reason: fmt.Sprintf("pack for %s does not fit equipment %s", rule.PartNumber, preset.Code),
		}
	}
	return fit, nil
}

func footprintFit(packL, packW, eqL, eqW decimal.Decimal) int {
	straight := floorDiv(eqL, packL) * floorDiv(eqW, packW)
	rotated := floorDiv(eqL, packW) * floorDiv(eqW, packL)
	if rotated > straight {
		return rotated
	}
	return straight
}

func floorDiv(a, b decimal.Decimal) int {
	return int(a.Div(b).Floor().IntPart())
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func validateRuleGeometry(rule *entities.PackagingRule) error {
	checks := []struct {
		field string
		value decimal.Decimal
	}{
		{"pack_length_m", rule.Length},
		{"pack_width_m", rule.Width},
		{"pack_height_m", rule.Height},
		{"gross_pack_weight_kg", rule.GrossPackWeight()},
	}
	for _, c := range checks {
		if c.value.LessThanOrEqual(decimal.Zero) {
			return &entities.ValidationError{
				Field:  c.field,
				Reason: fmt.Sprintf("must be > 0 on packaging rule %s", rule.ID),
			}
		}
	}
	return nil
}

func validatePresetGeometry(preset *entities.EquipmentPreset) error {
	checks := []struct {
		field string
		value decimal.Decimal
	}{
		{"internal_length_m", preset.Length},
		{"internal_width_m", preset.Width},
		{"internal_height_m", preset.Height},
		{"max_payload_kg", preset.MaxPayload},
	}
	for _, c := range checks {
		if c.value.LessThanOrEqual(decimal.Zero) {
			return &entities.ValidationError{
				Field:  c.field,
				Reason: fmt.Sprintf("must be > 0 for equipment %s", preset.Code),
			}
		}
	}
	return nil
}
