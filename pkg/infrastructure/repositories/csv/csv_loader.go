// Package csv loads planning snapshots from CSV scenario files
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/infrastructure/repositories/memory"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Scenario file names expected inside a scenario directory
const (
	FileSKUs          = "skus.csv"
	FilePackRules     = "pack_rules.csv"
	FileLeadTimes     = "lead_times.csv"
	FileLeadOverrides = "lead_time_overrides.csv"
	FileEquipment     = "equipment_presets.csv"
	FileRateCards     = "rate_cards.csv"
	FileRateCharges   = "rate_charges.csv"
	FileDemands       = "demand_lines.csv"
)

// LoadScenario loads every snapshot table from a scenario directory.
// lead_time_overrides.csv and rate_charges.csv are optional.
func (l *Loader) LoadScenario(dir string) (*memory.Snapshot, error) {
	snap := memory.NewSnapshot()

	skus, err := l.LoadSKUs(filepath.Join(dir, FileSKUs))
	if err != nil {
		return nil, err
	}
	if err := snap.SKUs.LoadSKUs(skus); err != nil {
		return nil, err
	}

	rules, err := l.LoadPackRules(filepath.Join(dir, FilePackRules))
	if err != nil {
		return nil, err
	}
	if err := snap.PackRules.LoadRules(rules); err != nil {
		return nil, err
	}

	leads, err := l.LoadLeadTimes(filepath.Join(dir, FileLeadTimes))
	if err != nil {
		return nil, err
	}
	if err := snap.LeadTimes.LoadBaselines(leads); err != nil {
		return nil, err
	}

	if path := filepath.Join(dir, FileLeadOverrides); fileExists(path) {
		overrides, err := l.LoadLeadTimeOverrides(path)
		if err != nil {
			return nil, err
		}
		if err := snap.LeadTimes.LoadOverrides(overrides); err != nil {
			return nil, err
		}
	}

	presets, err := l.LoadEquipmentPresets(filepath.Join(dir, FileEquipment))
	if err != nil {
		return nil, err
	}
	if err := snap.Equipment.LoadPresets(presets); err != nil {
		return nil, err
	}

	cards, err := l.LoadRateCards(filepath.Join(dir, FileRateCards))
	if err != nil {
		return nil, err
	}
	if err := snap.Rates.LoadCards(cards); err != nil {
		return nil, err
	}

	if path := filepath.Join(dir, FileRateCharges); fileExists(path) {
		charges, err := l.LoadRateCharges(path)
		if err != nil {
			return nil, err
		}
		if err := snap.Rates.LoadCharges(charges); err != nil {
			return nil, err
		}
	}

	demands, err := l.LoadDemandLines(filepath.Join(dir, FileDemands))
	if err != nil {
		return nil, err
	}
	if err := snap.Demands.LoadDemandLines(demands); err != nil {
		return nil, err
	}

	return snap, nil
}

// LoadSKUs loads SKU master data from a CSV file
func (l *Loader) LoadSKUs(filename string) ([]*entities.SKU, error) {
	header := []string{"part_number", "description", "default_coo", "uom"}
	var skus []*entities.SKU
	err := readRows("skus", filename, header, func(record []string) error {
		skus = append(skus, &entities.SKU{
			PartNumber:    entities.PartNumber(record[0]),
			Description:   record[1],
			DefaultOrigin: strings.ToUpper(record[2]),
			UnitOfMeasure: entities.UnitOfMeasure(strings.ToUpper(record[3])),
		})
		return nil
	})
	return skus, err
}

// LoadPackRules loads packaging rules from a CSV file
func (l *Loader) LoadPackRules(filename string) ([]*entities.PackagingRule, error) {
	header := []string{"id", "part_number", "is_default", "units_per_pack", "kg_per_unit",
		"pack_tare_kg", "pack_length_m", "pack_width_m", "pack_height_m",
		"stackable", "max_stack", "min_order_packs", "increment_packs"}
	var rules []*entities.PackagingRule
	err := readRows("pack rules", filename, header, func(record []string) error {
		isDefault, err := parseBool(record[2])
		if err != nil {
			return fmt.Errorf("is_default: %w", err)
		}
		stackable, err := parseBool(record[9])
		if err != nil {
			return fmt.Errorf("stackable: %w", err)
		}
		maxStack, err := parseInt(record[10])
		if err != nil {
			return fmt.Errorf("max_stack: %w", err)
		}
		minOrder, err := parseInt(record[11])
		if err != nil {
			return fmt.Errorf("min_order_packs: %w", err)
		}
		increment, err := parseInt(record[12])
		if err != nil {
			return fmt.Errorf("increment_packs: %w", err)
		}
		rule := &entities.PackagingRule{
			ID:             entities.PackRuleID(record[0]),
			PartNumber:     entities.PartNumber(record[1]),
			IsDefault:      isDefault,
			Stackable:      stackable,
			MaxStack:       maxStack,
			MinOrderPacks:  minOrder,
			IncrementPacks: increment,
		}
		fields := []struct {
			name  string
			value string
			dest  *decimal.Decimal
		}{
			{"units_per_pack", record[3], &rule.UnitsPerPack},
			{"kg_per_unit", record[4], &rule.WeightPerUnit},
			{"pack_tare_kg", record[5], &rule.PackTareWeight},
			{"pack_length_m", record[6], &rule.Length},
			{"pack_width_m", record[7], &rule.Width},
			{"pack_height_m", record[8], &rule.Height},
		}
		for _, f := range fields {
			v, err := decimal.NewFromString(strings.TrimSpace(f.value))
			if err != nil {
				return fmt.Errorf("%s: %w", f.name, err)
			}
			*f.dest = v
		}
		rules = append(rules, rule)
		return nil
	})
	return rules, err
}

// LoadLeadTimes loads baseline lead times from a CSV file
func (l *Loader) LoadLeadTimes(filename string) ([]*entities.LeadTime, error) {
	header := []string{"country_of_origin", "mode", "lead_days"}
	var leads []*entities.LeadTime
	err := readRows("lead times", filename, header, func(record []string) error {
		days, err := parseInt(record[2])
		if err != nil {
			return fmt.Errorf("lead_days: %w", err)
		}
		leads = append(leads, &entities.LeadTime{
			Origin: strings.ToUpper(record[0]),
			Mode:   entities.TransportMode(strings.ToUpper(record[1])),
			Days:   days,
		})
		return nil
	})
	return leads, err
}

// LoadLeadTimeOverrides loads SKU-level lead time overrides from a CSV file
func (l *Loader) LoadLeadTimeOverrides(filename string) ([]*entities.LeadTimeOverride, error) {
	header := []string{"part_number", "mode", "lead_days", "active"}
	var overrides []*entities.LeadTimeOverride
	err := readRows("lead time overrides", filename, header, func(record []string) error {
		days, err := parseInt(record[2])
		if err != nil {
			return fmt.Errorf("lead_days: %w", err)
		}
		active, err := parseBool(record[3])
		if err != nil {
			return fmt.Errorf("active: %w", err)
		}
		overrides = append(overrides, &entities.LeadTimeOverride{
			PartNumber: entities.PartNumber(record[0]),
			Mode:       entities.TransportMode(strings.ToUpper(record[1])),
			Days:       days,
			Active:     active,
		})
		return nil
	})
	return overrides, err
}

// LoadEquipmentPresets loads equipment presets from a CSV file
func (l *Loader) LoadEquipmentPresets(filename string) ([]*entities.EquipmentPreset, error) {
	header := []string{"equipment_code", "name", "mode", "length_m", "width_m", "height_m",
		"max_payload_kg", "volumetric_divisor", "active"}
	var presets []*entities.EquipmentPreset
	err := readRows("equipment presets", filename, header, func(record []string) error {
		active, err := parseBool(record[8])
		if err != nil {
			return fmt.Errorf("active: %w", err)
		}
		preset := &entities.EquipmentPreset{
			Code:   entities.EquipmentCode(strings.ToUpper(record[0])),
			Name:   record[1],
			Mode:   entities.TransportMode(strings.ToUpper(record[2])),
			Active: active,
		}
		fields := []struct {
			name  string
			value string
			dest  *decimal.Decimal
		}{
			{"length_m", record[3], &preset.Length},
			{"width_m", record[4], &preset.Width},
			{"height_m", record[5], &preset.Height},
			{"max_payload_kg", record[6], &preset.MaxPayload},
			{"volumetric_divisor", record[7], &preset.VolumetricDivisor},
		}
		for _, f := range fields {
			v, err := decimal.NewFromString(strings.TrimSpace(f.value))
			if err != nil {
				return fmt.Errorf("%s: %w", f.name, err)
			}
			*f.dest = v
		}
		presets = append(presets, preset)
		return nil
	})
	return presets, err
}

// LoadRateCards loads rate cards from a CSV file. Conditions are
// semicolon-separated flag values.
func (l *Loader) LoadRateCards(filename string) ([]*entities.RateCard, error) {
	header := []string{"id", "mode", "service_scope", "equipment", "origin_type", "origin_code",
		"dest_type", "dest_code", "carrier", "currency", "effective_from", "effective_to",
		"is_active", "conditions"}
	var cards []*entities.RateCard
	err := readRows("rate cards", filename, header, func(record []string) error {
		from, err := parseDate(record[10])
		if err != nil {
			return fmt.Errorf("effective_from: %w", err)
		}
		to, err := parseOptionalDate(record[11])
		if err != nil {
			return fmt.Errorf("effective_to: %w", err)
		}
		active, err := parseBool(record[12])
		if err != nil {
			return fmt.Errorf("is_active: %w", err)
		}
		cards = append(cards, &entities.RateCard{
			ID: entities.RateCardID(record[0]),
			Lane: entities.Lane{
				OriginType: entities.NodeType(strings.ToUpper(record[4])),
				OriginCode: strings.ToUpper(record[5]),
				DestType:   entities.NodeType(strings.ToUpper(record[6])),
				DestCode:   strings.ToUpper(record[7]),
			},
			Mode:          entities.TransportMode(strings.ToUpper(record[1])),
			Scope:         entities.ServiceScope(strings.ToUpper(record[2])),
			Equipment:     entities.EquipmentCode(strings.ToUpper(record[3])),
			Carrier:       record[8],
			Currency:      record[9],
			EffectiveFrom: from,
			EffectiveTo:   to,
			Active:        active,
			Conditions:    parseConditionList(record[13]),
		})
		return nil
	})
	return cards, err
}

// LoadRateCharges loads rate charges from a CSV file
func (l *Loader) LoadRateCharges(filename string) ([]*entities.RateCharge, error) {
	header := []string{"rate_card_id", "charge_code", "charge_name", "charge_type", "basis",
		"amount", "applies_when", "min_amount", "max_amount", "effective_from", "effective_to"}
	var charges []*entities.RateCharge
	err := readRows("rate charges", filename, header, func(record []string) error {
		amount, err := decimal.NewFromString(strings.TrimSpace(record[5]))
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		minAmount, err := parseOptionalDecimal(record[7])
		if err != nil {
			return fmt.Errorf("min_amount: %w", err)
		}
		maxAmount, err := parseOptionalDecimal(record[8])
		if err != nil {
			return fmt.Errorf("max_amount: %w", err)
		}
		from, err := parseOptionalDate(record[9])
		if err != nil {
			return fmt.Errorf("effective_from: %w", err)
		}
		to, err := parseOptionalDate(record[10])
		if err != nil {
			return fmt.Errorf("effective_to: %w", err)
		}
		charges = append(charges, &entities.RateCharge{
			RateCard:      entities.RateCardID(record[0]),
			Code:          record[1],
			Name:          record[2],
			Type:          entities.ChargeType(strings.ToUpper(record[3])),
			Basis:         entities.ChargeBasis(strings.ToUpper(record[4])),
			Amount:        amount,
			Condition:     parseConditionValue(record[6]),
			MinAmount:     minAmount,
			MaxAmount:     maxAmount,
			EffectiveFrom: from,
			EffectiveTo:   to,
		})
		return nil
	})
	return charges, err
}

// LoadDemandLines loads demand lines from a CSV file. Optional columns may
// be left empty: coo_override, manual_mode, pack_rule_id, manual_lead_days,
// origin_code and dest_code.
func (l *Loader) LoadDemandLines(filename string) ([]*entities.DemandLine, error) {
	header := []string{"id", "part_number", "need_date", "qty", "uom", "coo_override",
		"manual_mode", "pack_rule_id", "manual_lead_days", "origin_code", "dest_code"}
	var lines []*entities.DemandLine
	err := readRows("demand lines", filename, header, func(record []string) error {
		need, err := parseDate(record[2])
		if err != nil {
			return fmt.Errorf("need_date: %w", err)
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil {
			return fmt.Errorf("qty: %w", err)
		}
		manualLead := 0
		if strings.TrimSpace(record[8]) != "" {
			manualLead, err = parseInt(record[8])
			if err != nil {
				return fmt.Errorf("manual_lead_days: %w", err)
			}
		}
		line := &entities.DemandLine{
			ID:             entities.DemandLineID(record[0]),
			PartNumber:     entities.PartNumber(record[1]),
			NeedDate:       need,
			RawQty:         qty,
			UnitOfMeasure:  entities.UnitOfMeasure(strings.ToUpper(record[4])),
			OriginOverride: strings.ToUpper(strings.TrimSpace(record[5])),
			ManualMode:     entities.TransportMode(strings.ToUpper(strings.TrimSpace(record[6]))),
			PackRuleID:     entities.PackRuleID(strings.TrimSpace(record[7])),
			ManualLeadDays: manualLead,
		}
		origin := strings.ToUpper(strings.TrimSpace(record[9]))
		dest := strings.ToUpper(strings.TrimSpace(record[10]))
		if origin != "" && dest != "" {
			line.Lane = entities.Lane{
				OriginType: entities.NodeCity,
				OriginCode: origin,
				DestType:   entities.NodeCity,
				DestCode:   dest,
			}
		}
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

// readRows opens a CSV file, validates its header, and applies parse to
// every data row
func readRows(kind, filename string, expectedHeader []string, parse func(record []string) error) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 1 {
		return fmt.Errorf("%s CSV is empty", kind)
	}
	if !validateHeader(records[0], expectedHeader) {
		return fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
		if err := parse(record); err != nil {
			return fmt.Errorf("%s CSV row %d: %w", kind, i+2, err)
		}
	}
	return nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// parseOptionalDate treats an empty value as the zero time, which the
// effective-window logic reads as open-ended
func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return parseDate(s)
}

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}

func parseConditionValue(s string) entities.ConditionFlag {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "ALWAYS" {
		return ""
	}
	return entities.ConditionFlag(s)
}

func parseConditionList(s string) []entities.ConditionFlag {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var flags []entities.ConditionFlag
	for _, part := range strings.Split(s, ";") {
		if flag := parseConditionValue(part); flag != "" {
			flags = append(flags, flag)
		}
	}
	return flags
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
