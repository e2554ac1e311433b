package entities

import "github.com/shopspring/decimal"

// PackRuleID identifies a packaging rule
type PackRuleID string

// PackagingRule describes how a SKU is physically packed. Exactly one rule
// per SKU is the default; a demand line may reference another rule explicitly.
type PackagingRule struct {
	ID             PackRuleID
	PartNumber     PartNumber
	IsDefault      bool
	UnitsPerPack   decimal.Decimal
	WeightPerUnit  decimal.Decimal // kg per unit
	PackTareWeight decimal.Decimal // kg
	Length         decimal.Decimal // m
	Width          decimal.Decimal // m
	Height         decimal.Decimal // m
	Stackable      bool
	MaxStack       int // 0 = no stack limit beyond equipment height
	MinOrderPacks  int
	IncrementPacks int
}

// PackVolume returns the cube of a single pack in m³
func (r *PackagingRule) PackVolume() decimal.Decimal {
	return r.Length.Mul(r.Width).Mul(r.Height)
}

// GrossPackWeight returns the gross weight of one full pack in kg
func (r *PackagingRule) GrossPackWeight() decimal.Decimal {
	return r.UnitsPerPack.Mul(r.WeightPerUnit).Add(r.PackTareWeight)
}
