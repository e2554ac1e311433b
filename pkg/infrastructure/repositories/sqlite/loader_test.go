package sqlite

import (
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

const testSchema = `
CREATE TABLE sku_master (
	part_number TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	default_coo TEXT NOT NULL DEFAULT '',
	uom TEXT NOT NULL DEFAULT 'EA'
);
CREATE TABLE packaging_rules (
	id TEXT PRIMARY KEY,
	part_number TEXT NOT NULL,
	is_default INTEGER NOT NULL DEFAULT 0,
	units_per_pack REAL NOT NULL,
	kg_per_unit REAL NOT NULL DEFAULT 0,
	pack_tare_kg REAL NOT NULL DEFAULT 0,
	pack_length_m REAL NOT NULL,
	pack_width_m REAL NOT NULL,
	pack_height_m REAL NOT NULL,
	stackable INTEGER NOT NULL DEFAULT 0,
	max_stack INTEGER NOT NULL DEFAULT 0,
	min_order_packs INTEGER NOT NULL DEFAULT 0,
	increment_packs INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE lead_times (
	country_of_origin TEXT NOT NULL,
	mode TEXT NOT NULL,
	lead_days INTEGER NOT NULL
);
CREATE TABLE lead_time_overrides (
	part_number TEXT NOT NULL,
	mode TEXT NOT NULL,
	lead_days INTEGER NOT NULL,
	active INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE equipment_presets (
	equipment_code TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	mode TEXT NOT NULL,
	length_m REAL NOT NULL DEFAULT 0,
	width_m REAL NOT NULL DEFAULT 0,
	height_m REAL NOT NULL DEFAULT 0,
	max_payload_kg REAL NOT NULL,
	volumetric_divisor REAL NOT NULL DEFAULT 0,
	active INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE rate_card (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	service_scope TEXT NOT NULL,
	equipment TEXT NOT NULL,
	origin_type TEXT NOT NULL,
	origin_code TEXT NOT NULL,
	dest_type TEXT NOT NULL,
	dest_code TEXT NOT NULL,
	carrier TEXT NOT NULL DEFAULT '',
	currency TEXT NOT NULL,
	effective_from TEXT NOT NULL,
	effective_to TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	conditions TEXT NOT NULL DEFAULT ''
);
CREATE TABLE rate_charge (
	rate_card_id TEXT NOT NULL,
	charge_code TEXT NOT NULL,
	charge_name TEXT NOT NULL DEFAULT '',
	charge_type TEXT NOT NULL,
	basis TEXT NOT NULL,
	amount REAL NOT NULL,
	applies_when TEXT NOT NULL DEFAULT '',
	min_amount REAL,
	max_amount REAL,
	effective_from TEXT,
	effective_to TEXT
);
CREATE TABLE demand_lines (
	id TEXT PRIMARY KEY,
	part_number TEXT NOT NULL,
	need_date TEXT NOT NULL,
	qty REAL NOT NULL,
	uom TEXT NOT NULL DEFAULT '',
	coo_override TEXT NOT NULL DEFAULT '',
	manual_mode TEXT NOT NULL DEFAULT '',
	pack_rule_id TEXT NOT NULL DEFAULT '',
	manual_lead_days INTEGER NOT NULL DEFAULT 0,
	origin_code TEXT NOT NULL DEFAULT '',
	dest_code TEXT NOT NULL DEFAULT ''
);
`

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	loader, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { loader.Close() })

	if _, err := loader.db.Exec(testSchema); err != nil {
		t.Fatalf("schema setup failed: %v", err)
	}
	return loader
}

func seed(t *testing.T, loader *Loader, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := loader.db.Exec(stmt); err != nil {
			t.Fatalf("seed failed: %v\n%s", err, stmt)
		}
	}
}

func TestLoadSnapshot(t *testing.T) {
	loader := newTestLoader(t)
	seed(t, loader,
		`INSERT INTO sku_master VALUES ('PART-A', 'Widget', 'cn', 'ea')`,
		`INSERT INTO packaging_rules VALUES ('PR-1', 'PART-A', 1, 200, 2.5, 12, 1.1, 0.9, 1.0, 1, 2, 0, 0)`,
		`INSERT INTO lead_times VALUES ('CN', 'ocean', 35)`,
		`INSERT INTO lead_times VALUES ('CN', 'AIR', 7)`,
		`INSERT INTO lead_time_overrides VALUES ('PART-A', 'ocean', 28, 1)`,
		`INSERT INTO equipment_presets VALUES ('40hc', '40ft High Cube', 'ocean', 12.0, 2.3, 2.39, 25000, 0, 1)`,
		`INSERT INTO rate_card VALUES ('RC-1', 'ocean', 'p2p', '40hc', 'port', 'cnsha', 'port', 'nlrtm',
			'EVERGREEN', 'USD', '2026-01-01', '2026-07-01', 1, '')`,
		`INSERT INTO rate_card VALUES ('RC-2', 'ocean', 'p2p', '40hc', 'port', 'cnsha', 'port', 'nlrtm',
			'EVERGREEN', 'USD', '2026-07-01', NULL, 1, 'reefer, dg')`,
		`INSERT INTO rate_charge VALUES ('RC-1', 'BAS', 'Base Freight', 'base', 'per_unit', 1800, 'ALWAYS', NULL, NULL, NULL, NULL)`,
		`INSERT INTO rate_charge VALUES ('RC-1', 'FSC', 'Fuel', 'base', 'per_weight', 0.02, '', 150, NULL, NULL, NULL)`,
		`INSERT INTO demand_lines VALUES ('DL-1', 'PART-A', '2026-04-01', 1250, 'kg', '', 'air', '', 0, 'cnsha', 'nlrtm')`,
		`INSERT INTO demand_lines VALUES ('DL-2', 'PART-A', '2026-05-01', 300, '', '', '', 'PR-1', 14, '', '')`,
	)

	snap, err := loader.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
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
	if rule.UnitsPerPack.IntPart() != 200 || rule.MaxStack != 2 || !rule.Stackable {
		t.Errorf("unexpected rule: %+v", rule)
	}
	if rule.PackTareWeight.IntPart() != 12 {
		t.Errorf("tare weight should be loaded, got %s", rule.PackTareWeight)
	}

	if _, err := snap.LeadTimes.GetBaseline("CN", entities.ModeOcean); err != nil {
		t.Errorf("lowercase mode should normalize: %v", err)
	}
	override, err := snap.LeadTimes.GetOverride("PART-A", entities.ModeOcean)
	if err != nil {
		t.Fatalf("GetOverride failed: %v", err)
	}
	if override.Days != 28 || !override.Active {
		t.Errorf("unexpected override: %+v", override)
	}

	preset, err := snap.Equipment.GetPreset("40HC")
	if err != nil {
		t.Fatalf("equipment codes should be uppercased: %v", err)
	}
	if preset.Mode != entities.ModeOcean {
		t.Errorf("expected ocean preset, got %s", preset.Mode)
	}

	lane := entities.Lane{
		OriginType: entities.NodePort, OriginCode: "CNSHA",
		DestType: entities.NodePort, DestCode: "NLRTM",
	}
	cards, err := snap.Rates.GetCardsInEffect(lane, entities.ScopePortToPort, "40HC", entities.ModeOcean, day("2026-03-01"))
	if err != nil {
		t.Fatalf("GetCardsInEffect failed: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != "RC-1" {
		t.Fatalf("expected RC-1 in effect in March, got %v", cards)
	}

	cards, err = snap.Rates.GetCardsInEffect(lane, entities.ScopePortToPort, "40HC", entities.ModeOcean, day("2026-08-01"))
	if err != nil {
		t.Fatalf("GetCardsInEffect failed: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != "RC-2" {
		t.Fatalf("expected open-ended RC-2 in effect in August, got %v", cards)
	}
	if len(cards[0].Conditions) != 2 || cards[0].Conditions[0] != entities.CondReefer {
		t.Errorf("conditions should be parsed and uppercased, got %v", cards[0].Conditions)
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
	dl1 := lines[0]
	if dl1.ID != "DL-1" || dl1.UnitOfMeasure != entities.UOMKilogram || dl1.ManualMode != entities.ModeAir {
		t.Errorf("unexpected demand line: %+v", dl1)
	}
	if dl1.Lane.IsZero() || dl1.Lane.OriginCode != "CNSHA" {
		t.Errorf("demand lane should be populated from origin/dest codes: %+v", dl1.Lane)
	}
	dl2 := lines[1]
	if !dl2.Lane.IsZero() {
		t.Errorf("demand line without codes should carry no lane: %+v", dl2.Lane)
	}
	if dl2.PackRuleID != "PR-1" || dl2.ManualLeadDays != 14 {
		t.Errorf("unexpected demand line: %+v", dl2)
	}
}

func TestLoadSnapshot_EmptyTables(t *testing.T) {
	loader := newTestLoader(t)

	snap, err := loader.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot on empty schema failed: %v", err)
	}
	lines, err := snap.Demands.GetDemandLines()
	if err != nil {
		t.Fatalf("GetDemandLines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no demand lines, got %d", len(lines))
	}
}

func TestLoadSnapshot_BadDate(t *testing.T) {
	loader := newTestLoader(t)
	seed(t, loader,
		`INSERT INTO rate_card VALUES ('RC-BAD', 'ocean', 'p2p', '40hc', 'port', 'a', 'port', 'b',
			'', 'USD', 'not-a-date', NULL, 1, '')`,
	)

	if _, err := loader.LoadSnapshot(); err == nil {
		t.Fatal("expected error for malformed effective_from")
	}
}
