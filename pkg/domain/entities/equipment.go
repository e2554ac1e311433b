package entities

import "github.com/shopspring/decimal"

// EquipmentCode identifies an equipment preset
type EquipmentCode string

// EquipmentPreset is a named trailer/container/air definition with internal
// dimensions, payload limit, and an optional volumetric divisor for air
// chargeable-weight pricing.
type EquipmentPreset struct {
	Code              EquipmentCode
	Name              string
	Mode              TransportMode
	Length            decimal.Decimal // internal, m
	Width             decimal.Decimal // internal, m
	Height            decimal.Decimal // internal, m
	MaxPayload        decimal.Decimal // kg
	VolumetricDivisor decimal.Decimal // m³ per kg (0.006 ≡ IATA 6000 cm³/kg); zero when not applicable
	Active            bool
}

// Volume returns the internal cube of the preset in m³
func (e *EquipmentPreset) Volume() decimal.Decimal {
	return e.Length.Mul(e.Width).Mul(e.Height)
}
