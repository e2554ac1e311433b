// Package sqlite hydrates an in-memory planning snapshot from a SQLite
// master-data database. Loading happens once before a planning run; the core
// never touches the database during planning.
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/infrastructure/repositories/memory"
)

// Loader reads master data tables into entity snapshots
type Loader struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at the given path
func Open(path string) (*Loader, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database %s: %w", path, err)
	}
	return &Loader{db: db}, nil
}

// Close releases the database handle
func (l *Loader) Close() error {
	return l.db.Close()
}

type skuRow struct {
	PartNumber  string `db:"part_number"`
	Description string `db:"description"`
	DefaultCOO  string `db:"default_coo"`
	UOM         string `db:"uom"`
}

type packRuleRow struct {
	ID             string  `db:"id"`
	PartNumber     string  `db:"part_number"`
	IsDefault      bool    `db:"is_default"`
	UnitsPerPack   float64 `db:"units_per_pack"`
	KgPerUnit      float64 `db:"kg_per_unit"`
	PackTareKg     float64 `db:"pack_tare_kg"`
	PackLengthM    float64 `db:"pack_length_m"`
	PackWidthM     float64 `db:"pack_width_m"`
	PackHeightM    float64 `db:"pack_height_m"`
	Stackable      bool    `db:"stackable"`
	MaxStack       int     `db:"max_stack"`
	MinOrderPacks  int     `db:"min_order_packs"`
	IncrementPacks int     `db:"increment_packs"`
}

type leadTimeRow struct {
	CountryOfOrigin string `db:"country_of_origin"`
	Mode            string `db:"mode"`
	LeadDays        int    `db:"lead_days"`
}

type leadOverrideRow struct {
	PartNumber string `db:"part_number"`
	Mode       string `db:"mode"`
	LeadDays   int    `db:"lead_days"`
	Active     bool   `db:"active"`
}

type equipmentRow struct {
	Code              string  `db:"equipment_code"`
	Name              string  `db:"name"`
	Mode              string  `db:"mode"`
	LengthM           float64 `db:"length_m"`
	WidthM            float64 `db:"width_m"`
	HeightM           float64 `db:"height_m"`
	MaxPayloadKg      float64 `db:"max_payload_kg"`
	VolumetricDivisor float64 `db:"volumetric_divisor"`
	Active            bool    `db:"active"`
}

type rateCardRow struct {
	ID            string  `db:"id"`
	Mode          string  `db:"mode"`
	ServiceScope  string  `db:"service_scope"`
	Equipment     string  `db:"equipment"`
	OriginType    string  `db:"origin_type"`
	OriginCode    string  `db:"origin_code"`
	DestType      string  `db:"dest_type"`
	DestCode      string  `db:"dest_code"`
	Carrier       string  `db:"carrier"`
	Currency      string  `db:"currency"`
	EffectiveFrom string  `db:"effective_from"`
	EffectiveTo   *string `db:"effective_to"`
	IsActive      bool    `db:"is_active"`
	Conditions    string  `db:"conditions"`
}

type rateChargeRow struct {
	RateCardID    string   `db:"rate_card_id"`
	ChargeCode    string   `db:"charge_code"`
	ChargeName    string   `db:"charge_name"`
	ChargeType    string   `db:"charge_type"`
	Basis         string   `db:"basis"`
	Amount        float64  `db:"amount"`
	Condition     string   `db:"applies_when"`
	MinAmount     *float64 `db:"min_amount"`
	MaxAmount     *float64 `db:"max_amount"`
	EffectiveFrom *string  `db:"effective_from"`
	EffectiveTo   *string  `db:"effective_to"`
}

type demandRow struct {
	ID             string  `db:"id"`
	PartNumber     string  `db:"part_number"`
	NeedDate       string  `db:"need_date"`
	Qty            float64 `db:"qty"`
	UOM            string  `db:"uom"`
	COOOverride    string  `db:"coo_override"`
	ManualMode     string  `db:"manual_mode"`
	PackRuleID     string  `db:"pack_rule_id"`
	ManualLeadDays int     `db:"manual_lead_days"`
	OriginCode     string  `db:"origin_code"`
	DestCode       string  `db:"dest_code"`
}

// LoadSnapshot reads every master data table into a fresh in-memory snapshot
func (l *Loader) LoadSnapshot() (*memory.Snapshot, error) {
	snap := memory.NewSnapshot()

	var skus []skuRow
	if err := l.db.Select(&skus, `SELECT part_number, description, default_coo, uom FROM sku_master`); err != nil {
		return nil, fmt.Errorf("failed to load sku_master: %w", err)
	}
	for _, r := range skus {
		snap.SKUs.AddSKU(entities.SKU{
			PartNumber:    entities.PartNumber(r.PartNumber),
			Description:   r.Description,
			DefaultOrigin: strings.ToUpper(r.DefaultCOO),
			UnitOfMeasure: entities.UnitOfMeasure(strings.ToUpper(r.UOM)),
		})
	}

	var rules []packRuleRow
	if err := l.db.Select(&rules, `
		SELECT id, part_number, is_default, units_per_pack, kg_per_unit, pack_tare_kg,
		       pack_length_m, pack_width_m, pack_height_m, stackable, max_stack,
		       min_order_packs, increment_packs
		FROM packaging_rules ORDER BY part_number, id`); err != nil {
		return nil, fmt.Errorf("failed to load packaging_rules: %w", err)
	}
	for _, r := range rules {
		snap.PackRules.AddRule(entities.PackagingRule{
			ID:             entities.PackRuleID(r.ID),
			PartNumber:     entities.PartNumber(r.PartNumber),
			IsDefault:      r.IsDefault,
			UnitsPerPack:   decimal.NewFromFloat(r.UnitsPerPack),
			WeightPerUnit:  decimal.NewFromFloat(r.KgPerUnit),
			PackTareWeight: decimal.NewFromFloat(r.PackTareKg),
			Length:         decimal.NewFromFloat(r.PackLengthM),
			Width:          decimal.NewFromFloat(r.PackWidthM),
			Height:         decimal.NewFromFloat(r.PackHeightM),
			Stackable:      r.Stackable,
			MaxStack:       r.MaxStack,
			MinOrderPacks:  r.MinOrderPacks,
			IncrementPacks: r.IncrementPacks,
		})
	}

	var leads []leadTimeRow
	if err := l.db.Select(&leads, `SELECT country_of_origin, mode, lead_days FROM lead_times`); err != nil {
		return nil, fmt.Errorf("failed to load lead_times: %w", err)
	}
	for _, r := range leads {
		snap.LeadTimes.AddBaseline(entities.LeadTime{
			Origin: strings.ToUpper(r.CountryOfOrigin),
			Mode:   entities.TransportMode(strings.ToUpper(r.Mode)),
			Days:   r.LeadDays,
		})
	}

	var overrides []leadOverrideRow
	if err := l.db.Select(&overrides, `SELECT part_number, mode, lead_days, active FROM lead_time_overrides`); err != nil {
		return nil, fmt.Errorf("failed to load lead_time_overrides: %w", err)
	}
	for _, r := range overrides {
		snap.LeadTimes.AddOverride(entities.LeadTimeOverride{
			PartNumber: entities.PartNumber(r.PartNumber),
			Mode:       entities.TransportMode(strings.ToUpper(r.Mode)),
			Days:       r.LeadDays,
			Active:     r.Active,
		})
	}

	var presets []equipmentRow
	if err := l.db.Select(&presets, `
		SELECT equipment_code, name, mode, length_m, width_m, height_m,
		       max_payload_kg, volumetric_divisor, active
		FROM equipment_presets ORDER BY mode, equipment_code`); err != nil {
		return nil, fmt.Errorf("failed to load equipment_presets: %w", err)
	}
	for _, r := range presets {
		snap.Equipment.AddPreset(entities.EquipmentPreset{
			Code:              entities.EquipmentCode(strings.ToUpper(r.Code)),
			Name:              r.Name,
			Mode:              entities.TransportMode(strings.ToUpper(r.Mode)),
			Length:            decimal.NewFromFloat(r.LengthM),
			Width:             decimal.NewFromFloat(r.WidthM),
			Height:            decimal.NewFromFloat(r.HeightM),
			MaxPayload:        decimal.NewFromFloat(r.MaxPayloadKg),
			VolumetricDivisor: decimal.NewFromFloat(r.VolumetricDivisor),
			Active:            r.Active,
		})
	}

	var cards []rateCardRow
	if err := l.db.Select(&cards, `
		SELECT id, mode, service_scope, equipment, origin_type, origin_code,
		       dest_type, dest_code, carrier, currency, effective_from,
		       effective_to, is_active, conditions
		FROM rate_card`); err != nil {
		return nil, fmt.Errorf("failed to load rate_card: %w", err)
	}
	var cardEntities []*entities.RateCard
	for _, r := range cards {
		from, err := parseDate(r.EffectiveFrom)
		if err != nil {
			return nil, fmt.Errorf("rate_card %s: %w", r.ID, err)
		}
		to, err := parseOptionalDate(r.EffectiveTo)
		if err != nil {
			return nil, fmt.Errorf("rate_card %s: %w", r.ID, err)
		}
		cardEntities = append(cardEntities, &entities.RateCard{
			ID: entities.RateCardID(r.ID),
			Lane: entities.Lane{
				OriginType: entities.NodeType(strings.ToUpper(r.OriginType)),
				OriginCode: strings.ToUpper(r.OriginCode),
				DestType:   entities.NodeType(strings.ToUpper(r.DestType)),
				DestCode:   strings.ToUpper(r.DestCode),
			},
			Mode:          entities.TransportMode(strings.ToUpper(r.Mode)),
			Equipment:     entities.EquipmentCode(strings.ToUpper(r.Equipment)),
			Scope:         entities.ServiceScope(strings.ToUpper(r.ServiceScope)),
			Carrier:       r.Carrier,
			Currency:      r.Currency,
			EffectiveFrom: from,
			EffectiveTo:   to,
			Active:        r.IsActive,
			Conditions:    parseConditions(r.Conditions),
		})
	}
	if err := snap.Rates.LoadCards(cardEntities); err != nil {
		return nil, err
	}

	var charges []rateChargeRow
	if err := l.db.Select(&charges, `
		SELECT rate_card_id, charge_code, charge_name, charge_type, basis, amount,
		       applies_when, min_amount, max_amount, effective_from, effective_to
		FROM rate_charge`); err != nil {
		return nil, fmt.Errorf("failed to load rate_charge: %w", err)
	}
	for _, r := range charges {
		from, err := parseOptionalDate(r.EffectiveFrom)
		if err != nil {
			return nil, fmt.Errorf("rate_charge %s: %w", r.ChargeCode, err)
		}
		to, err := parseOptionalDate(r.EffectiveTo)
		if err != nil {
			return nil, fmt.Errorf("rate_charge %s: %w", r.ChargeCode, err)
		}
		snap.Rates.AddCharge(entities.RateCharge{
			RateCard:      entities.RateCardID(r.RateCardID),
			Code:          r.ChargeCode,
			Name:          r.ChargeName,
			Type:          entities.ChargeType(strings.ToUpper(r.ChargeType)),
			Basis:         entities.ChargeBasis(strings.ToUpper(r.Basis)),
			Amount:        decimal.NewFromFloat(r.Amount),
			Condition:     parseCondition(r.Condition),
			MinAmount:     optionalDecimal(r.MinAmount),
			MaxAmount:     optionalDecimal(r.MaxAmount),
			EffectiveFrom: from,
			EffectiveTo:   to,
		})
	}

	var demands []demandRow
	if err := l.db.Select(&demands, `
		SELECT id, part_number, need_date, qty, uom, coo_override, manual_mode,
		       pack_rule_id, manual_lead_days, origin_code, dest_code
		FROM demand_lines ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to load demand_lines: %w", err)
	}
	var lines []*entities.DemandLine
	for _, r := range demands {
		need, err := parseDate(r.NeedDate)
		if err != nil {
			return nil, fmt.Errorf("demand_line %s: %w", r.ID, err)
		}
		line := &entities.DemandLine{
			ID:             entities.DemandLineID(r.ID),
			PartNumber:     entities.PartNumber(r.PartNumber),
			NeedDate:       need,
			RawQty:         decimal.NewFromFloat(r.Qty),
			UnitOfMeasure:  entities.UnitOfMeasure(strings.ToUpper(r.UOM)),
			OriginOverride: strings.ToUpper(r.COOOverride),
			ManualMode:     entities.TransportMode(strings.ToUpper(r.ManualMode)),
			PackRuleID:     entities.PackRuleID(r.PackRuleID),
			ManualLeadDays: r.ManualLeadDays,
		}
		if r.OriginCode != "" && r.DestCode != "" {
			line.Lane = entities.Lane{
				OriginType: entities.NodeCity,
				OriginCode: strings.ToUpper(r.OriginCode),
				DestType:   entities.NodeCity,
				DestCode:   strings.ToUpper(r.DestCode),
			}
		}
		lines = append(lines, line)
	}
	if err := snap.Demands.LoadDemandLines(lines); err != nil {
		return nil, err
	}

	return snap, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func parseOptionalDate(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	return parseDate(*s)
}

// parseCondition maps the applies_when column to a condition flag;
// "ALWAYS" and empty both mean unconditional
func parseCondition(s string) entities.ConditionFlag {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "ALWAYS" {
		return ""
	}
	return entities.ConditionFlag(s)
}

func parseConditions(s string) []entities.ConditionFlag {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var flags []entities.ConditionFlag
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			flags = append(flags, entities.ConditionFlag(part))
		}
	}
	return flags
}

func optionalDecimal(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}
