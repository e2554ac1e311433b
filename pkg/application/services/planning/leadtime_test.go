package planning

import (
	"errors"
	"testing"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/infrastructure/repositories/memory"
)

func newTestLeadTimeRepo() *memory.LeadTimeRepository {
	repo := memory.NewLeadTimeRepository()
	repo.AddBaseline(entities.LeadTime{Origin: "CN", Mode: entities.ModeOcean, Days: 35})
	repo.AddBaseline(entities.LeadTime{Origin: "CN", Mode: entities.ModeAir, Days: 7})
	repo.AddBaseline(entities.LeadTime{Origin: "DE", Mode: entities.ModeTruck, Days: 4})
	return repo
}

func testSKU() *entities.SKU {
	return &entities.SKU{
		PartNumber:    "PART-A",
		DefaultOrigin: "CN",
		UnitOfMeasure: entities.UOMEach,
	}
}

func TestLeadTimeResolver_Baseline(t *testing.T) {
	resolver := NewLeadTimeResolver(newTestLeadTimeRepo())
	line := &entities.DemandLine{ID: "DL-1", PartNumber: "PART-A"}

	days, err := resolver.Resolve(line, testSKU(), entities.ModeOcean)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if days != 35 {
		t.Errorf("expected baseline 35 days, got %d", days)
	}
}

func TestLeadTimeResolver_OverrideBeatsBaseline(t *testing.T) {
	repo := newTestLeadTimeRepo()
	repo.AddOverride(entities.LeadTimeOverride{
		PartNumber: "PART-A", Mode: entities.ModeOcean, Days: 28, Active: true,
	})
	resolver := NewLeadTimeResolver(repo)
	line := &entities.DemandLine{ID: "DL-1", PartNumber: "PART-A"}

	days, err := resolver.Resolve(line, testSKU(), entities.ModeOcean)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if days != 28 {
		t.Errorf("expected override 28 days, got %d", days)
	}
}

func TestLeadTimeResolver_InactiveOverrideIgnored(t *testing.T) {
	repo := newTestLeadTimeRepo()
	repo.AddOverride(entities.LeadTimeOverride{
		PartNumber: "PART-A", Mode: entities.ModeOcean, Days: 28, Active: false,
	})
	resolver := NewLeadTimeResolver(repo)
	line := &entities.DemandLine{ID: "DL-1", PartNumber: "PART-A"}

	days, err := resolver.Resolve(line, testSKU(), entities.ModeOcean)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if days != 35 {
		t.Errorf("inactive override should fall through to baseline 35, got %d", days)
	}
}

func TestLeadTimeResolver_ManualDaysWin(t *testing.T) {
	repo := newTestLeadTimeRepo()
	repo.AddOverride(entities.LeadTimeOverride{
		PartNumber: "PART-A", Mode: entities.ModeOcean, Days: 28, Active: true,
	})
	resolver := NewLeadTimeResolver(repo)
	line := &entities.DemandLine{ID: "DL-1", PartNumber: "PART-A", ManualLeadDays: 21}

	days, err := resolver.Resolve(line, testSKU(), entities.ModeOcean)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if days != 21 {
		t.Errorf("manual lead days must win, expected 21, got %d", days)
	}
}

func TestLeadTimeResolver_OriginOverrideOnLine(t *testing.T) {
	resolver := NewLeadTimeResolver(newTestLeadTimeRepo())
	line := &entities.DemandLine{ID: "DL-1", PartNumber: "PART-A", OriginOverride: "DE"}

	days, err := resolver.Resolve(line, testSKU(), entities.ModeTruck)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if days != 4 {
		t.Errorf("expected DE truck baseline 4 days, got %d", days)
	}
}

func TestLeadTimeResolver_MissingMode(t *testing.T) {
	resolver := NewLeadTimeResolver(newTestLeadTimeRepo())
	line := &entities.DemandLine{ID: "DL-1", PartNumber: "PART-A"}

	_, err := resolver.Resolve(line, testSKU(), entities.ModeRail)
	var nfErr *entities.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError for rail, got %v", err)
	}
}

func TestShipByAndFeasible(t *testing.T) {
	need := day("2026-03-15")
	shipBy := ShipBy(need, 35)
	if !shipBy.Equal(day("2026-02-08")) {
		t.Errorf("expected ship-by 2026-02-08, got %s", shipBy.Format("2006-01-02"))
	}

	if !Feasible(shipBy, day("2026-02-08")) {
		t.Error("ship-by equal to reference date must be feasible")
	}
	if Feasible(shipBy, day("2026-02-09")) {
		t.Error("ship-by before reference date must be infeasible")
	}
}
