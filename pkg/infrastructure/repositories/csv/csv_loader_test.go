package csv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func writeScenario(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, FileSKUs,
		"part_number,description,default_coo,uom\n"+
			"PART-A,Widget,cn,ea\n")
	writeFile(t, dir, FilePackRules,
		"id,part_number,is_default,units_per_pack,kg_per_unit,pack_tare_kg,pack_length_m,pack_width_m,pack_height_m,stackable,max_stack,min_order_packs,increment_packs\n"+
			"PR-1,PART-A,true,200,2.5,12,1.1,0.9,1.0,yes,2,0,0\n")
	writeFile(t, dir, FileLeadTimes,
		"country_of_origin,mode,lead_days\n"+
			"cn,ocean,35\n"+
			"cn,air,7\n")
	writeFile(t, dir, FileLeadOverrides,
		"part_number,mode,lead_days,active\n"+
			"PART-A,ocean,28,1\n")
	writeFile(t, dir, FileEquipment,
		"equipment_code,name,mode,length_m,width_m,height_m,max_payload_kg,volumetric_divisor,active\n"+
			"40hc,40ft High Cube,ocean,12.0,2.3,2.39,25000,0,1\n")
	writeFile(t, dir, FileRateCards,
		"id,mode,service_scope,equipment,origin_type,origin_code,dest_type,dest_code,carrier,currency,effective_from,effective_to,is_active,conditions\n"+
			"RC-1,ocean,p2p,40hc,port,cnsha,port,nlrtm,EVERGREEN,USD,2026-01-01,2026-07-01,1,\n"+
			"RC-2,ocean,p2p,40hc,port,cnsha,port,nlrtm,EVERGREEN,USD,2026-07-01,,1,reefer;dg\n")
	writeFile(t, dir, FileRateCharges,
		"rate_card_id,charge_code,charge_name,charge_type,basis,amount,applies_when,min_amount,max_amount,effective_from,effective_to\n"+
			"RC-1,BAS,Base Freight,base,per_unit,1800,ALWAYS,,,,\n"+
			"RC-1,FSC,Fuel,base,per_weight,0.02,,150,,,\n")
	writeFile(t, dir, FileDemands,
		"id,part_number,need_date,qty,uom,coo_override,manual_mode,pack_rule_id,manual_lead_days,origin_code,dest_code\n"+
			"DL-1,PART-A,2026-04-01,1250,kg,,air,,,cnsha,nlrtm\n"+
			"DL-2,PART-A,2026-05-01,300,,,,PR-1,14,,\n")
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir)

	snap, err := NewLoader().LoadScenario(dir)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	sku, err := snap.SKUs.GetSKU("PART-A")
	if err != nil {
		t.Fatalf("GetSKU failed: %v", err)
	}
	if sku.DefaultOrigin != "CN" || sku.UnitOfMeasure != entities.UOMEach {
		t.Errorf("sku codes should be uppercased: %+v", sku)
	}

	rule, err := snap.PackRules.GetDefaultRule("PART-A")
	if err != nil {
		t.Fatalf("GetDefaultRule failed: %v", err)
	}
	if !rule.Stackable || rule.MaxStack != 2 || rule.UnitsPerPack.IntPart() != 200 {
		t.Errorf("unexpected rule: %+v", rule)
	}

	override, err := snap.LeadTimes.GetOverride("PART-A", entities.ModeOcean)
	if err != nil {
		t.Fatalf("GetOverride failed: %v", err)
	}
	if override.Days != 28 || !override.Active {
		t.Errorf("unexpected override: %+v", override)
	}

	if _, err := snap.Equipment.GetPreset("40HC"); err != nil {
		t.Errorf("equipment codes should be uppercased: %v", err)
	}

	lane := entities.Lane{
		OriginType: entities.NodePort, OriginCode: "CNSHA",
		DestType: entities.NodePort, DestCode: "NLRTM",
	}
	cards, err := snap.Rates.GetCardsInEffect(lane, entities.ScopePortToPort, "40HC", entities.ModeOcean, day("2026-08-01"))
	if err != nil {
		t.Fatalf("GetCardsInEffect failed: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != "RC-2" {
		t.Fatalf("expected open-ended RC-2 in August, got %v", cards)
	}
	if len(cards[0].Conditions) != 2 {
		t.Errorf("semicolon conditions should parse, got %v", cards[0].Conditions)
	}

	charges, err := snap.Rates.GetCharges("RC-1")
	if err != nil {
		t.Fatalf("GetCharges failed: %v", err)
	}
	if len(charges) != 2 {
		t.Fatalf("expected 2 charges, got %d", len(charges))
	}
	for _, ch := range charges {
		if ch.Code == "BAS" && ch.Condition != "" {
			t.Error("ALWAYS should map to an empty condition")
		}
		if ch.Code == "FSC" && ch.MinAmount.IntPart() != 150 {
			t.Errorf("FSC min_amount should be 150, got %s", ch.MinAmount)
		}
	}

	lines, err := snap.Demands.GetDemandLines()
	if err != nil {
		t.Fatalf("GetDemandLines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 demand lines, got %d", len(lines))
	}
	if lines[0].ManualMode != entities.ModeAir || lines[0].Lane.OriginCode != "CNSHA" {
		t.Errorf("unexpected demand line: %+v", lines[0])
	}
	if lines[1].ManualLeadDays != 14 || !lines[1].Lane.IsZero() {
		t.Errorf("unexpected demand line: %+v", lines[1])
	}
}

func TestLoadScenario_OptionalFilesAbsent(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir)
	os.Remove(filepath.Join(dir, FileLeadOverrides))
	os.Remove(filepath.Join(dir, FileRateCharges))

	snap, err := NewLoader().LoadScenario(dir)
	if err != nil {
		t.Fatalf("LoadScenario without optional files failed: %v", err)
	}
	if _, err := snap.LeadTimes.GetOverride("PART-A", entities.ModeOcean); err == nil {
		t.Error("no overrides were loaded, lookup should fail")
	}
}

func TestLoadScenario_HeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir)
	writeFile(t, dir, FileSKUs, "part,desc\nPART-A,Widget\n")

	if _, err := NewLoader().LoadScenario(dir); err == nil {
		t.Fatal("expected header mismatch error")
	}
}

func TestLoadScenario_MalformedRow(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir)
	writeFile(t, dir, FileLeadTimes,
		"country_of_origin,mode,lead_days\n"+
			"cn,ocean,not-a-number\n")

	if _, err := NewLoader().LoadScenario(dir); err == nil {
		t.Fatal("expected parse error for malformed lead days")
	}
}
