package planning

import (
	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

// AllocationWindow is one capacity-bounded slot a tranche may be planned
// into, e.g. a planning cycle or an available equipment slot
type AllocationWindow struct {
	Name          string
	CapacityPacks int
}

// AllocateTranches splits a demand line's pack requirement greedily across
// the windows in order. Each tranche consumes as many packs as the binding
// constraint allows (window capacity, or maxTranchePacks when positive); the
// remainder carries into the next window flagged as excess carry. When no
// window accommodates the remainder the last tranche is emitted unresolved
// and an AllocationShortfall is returned alongside the tranches.
//
// Allocation is deterministic: identical inputs always yield identical
// tranche ordering and sizes.
func AllocateTranches(line entities.DemandLineID, packs int,
	windows []AllocationWindow, maxTranchePacks int) ([]entities.Tranche, error) {

	if packs <= 0 {
		return nil, nil
	}

	var tranches []entities.Tranche
	remaining := packs
	carry := false

	for _, w := range windows {
		if remaining == 0 {
			break
		}
		take := remaining
		if w.CapacityPacks > 0 && take > w.CapacityPacks {
			take = w.CapacityPacks
		}
		if maxTranchePacks > 0 && take > maxTranchePacks {
			take = maxTranchePacks
		}
		if take <= 0 {
			continue
		}
		tranches = append(tranches, entities.Tranche{
			DemandLine:    line,
			SequenceIndex: len(tranches),
			PackQty:       take,
			IsExcessCarry: carry,
			Window:        w.Name,
			Resolved:      true,
		})
		remaining -= take
		carry = true
	}

	if remaining > 0 {
		tranches = append(tranches, entities.Tranche{
			DemandLine:    line,
			SequenceIndex: len(tranches),
			PackQty:       remaining,
			IsExcessCarry: carry,
			Resolved:      false,
		})
		return tranches, &entities.AllocationShortfall{DemandLine: line, UnallocatedPacks: remaining}
	}
	return tranches, nil
}
