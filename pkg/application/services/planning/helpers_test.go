package planning

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

// Shared fixture builders for the planning tests

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// testRule is a one-cubic-meter pack, 500 kg gross (200 units x 2.5 kg/unit),
// stackable two high
func testRule() *entities.PackagingRule {
	return &entities.PackagingRule{
		ID:             "PR-1",
		PartNumber:     "PART-A",
		IsDefault:      true,
		UnitsPerPack:   d("200"),
		WeightPerUnit:  d("2.5"),
		PackTareWeight: d("0"),
		Length:         d("1.0"),
		Width:          d("1.0"),
		Height:         d("1.0"),
		Stackable:      true,
		MaxStack:       2,
	}
}

// testOceanPreset approximates a 40' high-cube container
func testOceanPreset() *entities.EquipmentPreset {
	return &entities.EquipmentPreset{
		Code:       "40HC",
		Name:       "40ft High Cube",
		Mode:       entities.ModeOcean,
		Length:     d("12.0"),
		Width:      d("2.3"),
		Height:     d("2.39"),
		MaxPayload: d("25000"),
		Active:     true,
	}
}

// testAirPreset uses the IATA volumetric divisor of 6000 cm³/kg (0.006 m³/kg)
func testAirPreset() *entities.EquipmentPreset {
	return &entities.EquipmentPreset{
		Code:              "AIRSTD",
		Name:              "Standard Air",
		Mode:              entities.ModeAir,
		MaxPayload:        d("10000"),
		VolumetricDivisor: d("0.006"),
		Active:            true,
	}
}
