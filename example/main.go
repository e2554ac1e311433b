package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/application/services/planning"
	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Build a small planning universe in memory
	snap := memory.NewSnapshot()
	setupShanghaiRotterdamLane(snap)

	planner := planning.NewPlanner(snap.SKUs, snap.PackRules, snap.LeadTimes, snap.Equipment, snap.Rates, planning.Config{
		ReferenceDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		DefaultLane: entities.Lane{
			OriginType: entities.NodePort, OriginCode: "CNSHA",
			DestType: entities.NodePort, DestCode: "NLRTM",
		},
	})

	// 1250 kg of brake assemblies needed in Rotterdam by April 1st
	lines := []*entities.DemandLine{
		{
			ID:            "PO-4711-10",
			PartNumber:    "BRAKE-ASSY",
			NeedDate:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			RawQty:        decimal.NewFromInt(1250),
			UnitOfMeasure: entities.UOMKilogram,
		},
	}

	fmt.Println("🚢 Planning inbound shipments Shanghai → Rotterdam...")
	fmt.Printf("Demand: %s kg of %s needed by %s\n\n",
		lines[0].RawQty, lines[0].PartNumber, lines[0].NeedDate.Format("2006-01-02"))

	result, err := planner.Run(ctx, lines)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	for _, line := range result.Lines {
		fmt.Printf("📦 %s: %s units required, %s shipped in %d packs\n",
			line.DemandLine, line.RequiredUnits, line.ShippedUnits, line.TotalPacks)
		for _, tr := range line.Tranches {
			for _, rec := range tr.Recommendations {
				status := "infeasible"
				if rec.Feasible {
					status = fmt.Sprintf("ship by %s", rec.ShipBy.Format("2006-01-02"))
				}
				price := "unrated"
				if rec.Priced {
					price = fmt.Sprintf("%s %s via %s", rec.Cost, rec.Currency, rec.Carrier)
				}
				fmt.Printf("  #%d %-5s %-6s %s, %s\n", rec.Rank, rec.Mode, rec.Equipment, status, price)
			}
		}
	}

	fmt.Printf("\n🗓  Consolidated shipments: %d\n", len(result.Shipments))
	for _, row := range result.Shipments {
		fmt.Printf("  %s %s x%d, %d packs, util %.0f%%, %s %s\n",
			row.Mode, row.Equipment, row.EquipmentCount, row.TotalPacks,
			row.Utilization*100, row.Cost, row.Currency)
	}
}

func setupShanghaiRotterdamLane(snap *memory.Snapshot) {
	snap.SKUs.AddSKU(entities.SKU{
		PartNumber:    "BRAKE-ASSY",
		Description:   "Brake assembly",
		DefaultOrigin: "CN",
		UnitOfMeasure: entities.UOMEach,
	})

	snap.PackRules.AddRule(entities.PackagingRule{
		ID:            "PR-BRAKE",
		PartNumber:    "BRAKE-ASSY",
		IsDefault:     true,
		UnitsPerPack:  decimal.NewFromInt(200),
		WeightPerUnit: decimal.NewFromFloat(2.5),
		Length:        decimal.NewFromFloat(1.1),
		Width:         decimal.NewFromFloat(0.9),
		Height:        decimal.NewFromFloat(1.0),
		Stackable:     true,
		MaxStack:      2,
	})

	snap.LeadTimes.AddBaseline(entities.LeadTime{Origin: "CN", Mode: entities.ModeOcean, Days: 35})
	snap.LeadTimes.AddBaseline(entities.LeadTime{Origin: "CN", Mode: entities.ModeAir, Days: 7})

	snap.Equipment.AddPreset(entities.EquipmentPreset{
		Code: "40HC", Name: "40ft High Cube", Mode: entities.ModeOcean,
		Length: decimal.NewFromFloat(12.0), Width: decimal.NewFromFloat(2.35), Height: decimal.NewFromFloat(2.39),
		MaxPayload: decimal.NewFromInt(26000),
		Active:     true,
	})
	snap.Equipment.AddPreset(entities.EquipmentPreset{
		Code: "AIRSTD", Name: "Standard Air", Mode: entities.ModeAir,
		MaxPayload:        decimal.NewFromInt(10000),
		VolumetricDivisor: decimal.NewFromFloat(0.006),
		Active:            true,
	})

	lane := entities.Lane{
		OriginType: entities.NodePort, OriginCode: "CNSHA",
		DestType: entities.NodePort, DestCode: "NLRTM",
	}
	snap.Rates.AddCard(entities.RateCard{
		ID: "OCN-2026-Q1", Lane: lane, Mode: entities.ModeOcean, Equipment: "40HC",
		Scope: entities.ScopePortToPort, Carrier: "EVERGREEN", Currency: "USD",
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:        true,
	})
	snap.Rates.AddCharge(entities.RateCharge{
		RateCard: "OCN-2026-Q1", Code: "BAS", Name: "Base Freight",
		Type: entities.ChargeBase, Basis: entities.BasisPerUnit,
		Amount: decimal.NewFromInt(1850),
	})
	snap.Rates.AddCharge(entities.RateCharge{
		RateCard: "OCN-2026-Q1", Code: "THC", Name: "Terminal Handling",
		Type: entities.ChargeBase, Basis: entities.BasisPerUnit,
		Amount: decimal.NewFromInt(240),
	})
	snap.Rates.AddCard(entities.RateCard{
		ID: "AIR-2026-Q1", Lane: lane, Mode: entities.ModeAir, Equipment: "AIRSTD",
		Scope: entities.ScopePortToPort, Carrier: "CARGOLUX", Currency: "USD",
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:        true,
	})
	snap.Rates.AddCharge(entities.RateCharge{
		RateCard: "AIR-2026-Q1", Code: "AFR", Name: "Air Freight",
		Type: entities.ChargeBase, Basis: entities.BasisPerWeight,
		Amount: decimal.NewFromFloat(4.20), MinAmount: decimal.NewFromInt(500),
	})
}
