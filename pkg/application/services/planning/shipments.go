package planning

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
)

// AcceptedOption is one accepted recommendation for a tranche, ready for
// consolidation into shipments
type AcceptedOption struct {
	DemandLine    entities.DemandLineID
	SequenceIndex int
	Lane          entities.Lane
	Mode          entities.TransportMode
	Equipment     entities.EquipmentCode
	ShipBy        time.Time
	PackQty       int
	Rule          *entities.PackagingRule
	Cost          decimal.Decimal
	Priced        bool
	Currency      string
}

// ShipmentBuilder consolidates accepted recommendations across demand lines
// sharing lane, mode and a consolidation window around the ship-by date
type ShipmentBuilder struct {
	equipment repositories.EquipmentRepository
}

// NewShipmentBuilder creates a builder over an equipment snapshot
func NewShipmentBuilder(equipment repositories.EquipmentRepository) *ShipmentBuilder {
	return &ShipmentBuilder{equipment: equipment}
}

// Build groups the accepted options into shipments. Combined cube, weight
// and equipment counts are recomputed on each group's aggregate rather than
// summed per line, since partial equipment usage combines. Tranches whose
// ship-by date already lies before the planning reference date cannot be
// grouped in time and are reported as excess rows instead.
func (b *ShipmentBuilder) Build(accepted []AcceptedOption, windowDays int, reference time.Time) ([]entities.ShipmentRow, []entities.ExcessRow, error) {
	if windowDays < 1 {
		windowDays = 1
	}

	var excess []entities.ExcessRow
	groups := make(map[string][]AcceptedOption)
	for _, opt := range accepted {
		if opt.ShipBy.Before(reference) {
			excess = append(excess, entities.ExcessRow{
				DemandLine:    opt.DemandLine,
				SequenceIndex: opt.SequenceIndex,
				PackQty:       opt.PackQty,
				Reason:        entities.ReasonLeadTimeInfeasible,
				Detail:        fmt.Sprintf("ship-by %s is before planning reference %s", opt.ShipBy.Format("2006-01-02"), reference.Format("2006-01-02")),
			})
			continue
		}
		groups[b.groupKey(opt, windowDays)] = append(groups[b.groupKey(opt, windowDays)], opt)
	}

	var rows []entities.ShipmentRow
	for _, members := range groups {
		row, err := b.buildRow(members)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Lane != b.Lane {
			return laneKey(a.Lane) < laneKey(b.Lane)
		}
		if a.Mode != b.Mode {
			return a.Mode < b.Mode
		}
		if a.Equipment != b.Equipment {
			return a.Equipment < b.Equipment
		}
		return a.ShipBy.Before(b.ShipBy)
	})
	sort.Slice(excess, func(i, j int) bool {
		if excess[i].DemandLine != excess[j].DemandLine {
			return excess[i].DemandLine < excess[j].DemandLine
		}
		return excess[i].SequenceIndex < excess[j].SequenceIndex
	})
	return rows, excess, nil
}

func (b *ShipmentBuilder) buildRow(members []AcceptedOption) (*entities.ShipmentRow, error) {
	first := members[0]
	row := &entities.ShipmentRow{
		Lane:      first.Lane,
		Mode:      first.Mode,
		Equipment: first.Equipment,
		ShipBy:    first.ShipBy,
	}

	seen := make(map[entities.DemandLineID]bool)
	totalWeight := decimal.Zero
	totalVolume := decimal.Zero
	for _, m := range members {
		packs := decimal.NewFromInt(int64(m.PackQty))
		totalWeight = totalWeight.Add(m.Rule.GrossPackWeight().Mul(packs))
		totalVolume = totalVolume.Add(m.Rule.PackVolume().Mul(packs))
		row.TotalPacks += m.PackQty
		if m.Priced {
			row.Cost = row.Cost.Add(m.Cost)
			if row.Currency == "" {
				row.Currency = m.Currency
			}
		}
		if m.ShipBy.Before(row.ShipBy) {
			row.ShipBy = m.ShipBy
		}
		if !seen[m.DemandLine] {
			seen[m.DemandLine] = true
			row.Lines = append(row.Lines, m.DemandLine)
		}
	}
	sort.Slice(row.Lines, func(i, j int) bool { return row.Lines[i] < row.Lines[j] })

	row.TotalWeight = totalWeight
	row.TotalVolume = totalVolume

	preset, err := b.equipment.GetPreset(first.Equipment)
	if err != nil {
		return nil, err
	}
	est, err := EstimateAggregate(totalWeight, totalVolume, preset)
	if err != nil {
		return nil, err
	}
	row.EquipmentCount = est.EquipmentCount
	row.Utilization = est.Utilization
	return row, nil
}

func (b *ShipmentBuilder) groupKey(opt AcceptedOption, windowDays int) string {
	bucket := opt.ShipBy.Unix() / (int64(windowDays) * 86400)
	return fmt.Sprintf("%s|%s|%s|%d", laneKey(opt.Lane), opt.Mode, opt.Equipment, bucket)
}

func laneKey(l entities.Lane) string {
	return fmt.Sprintf("%s:%s-%s:%s", l.OriginType, l.OriginCode, l.DestType, l.DestCode)
}
