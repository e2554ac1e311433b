package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// InfeasibilityReason explains why an option or tranche could not be planned
type InfeasibilityReason string

const (
	ReasonNone                InfeasibilityReason = ""
	ReasonNoRateFound         InfeasibilityReason = "NO_RATE_FOUND"
	ReasonLeadTimeInfeasible  InfeasibilityReason = "LEAD_TIME_INFEASIBLE"
	ReasonNoLeadTime          InfeasibilityReason = "NO_LEAD_TIME"
	ReasonAllocationShortfall InfeasibilityReason = "ALLOCATION_SHORTFALL"
)

// Recommendation is one mode/equipment option for a tranche, derived per
// planning run and never persisted.
type Recommendation struct {
	Mode             TransportMode       `json:"mode"`
	Equipment        EquipmentCode       `json:"equipment"`
	LeadDays         int                 `json:"lead_days"`
	ShipBy           time.Time           `json:"ship_by"`
	Feasible         bool                `json:"feasible"`
	Reason           InfeasibilityReason `json:"reason,omitempty"`
	ManualOverride   bool                `json:"manual_override"`
	RateCard         RateCardID          `json:"rate_card,omitempty"`
	Carrier          string              `json:"carrier,omitempty"`
	Currency         string              `json:"currency,omitempty"`
	Cost             decimal.Decimal     `json:"cost"`
	Priced           bool                `json:"priced"`
	ChargeableWeight decimal.Decimal     `json:"chargeable_weight_kg"`
	Utilization      float64             `json:"utilization"`
	EquipmentCount   int                 `json:"equipment_count"`
	Rank             int                 `json:"rank"`
}

// ShipmentRow is one consolidated shipment in the export-ready plan
type ShipmentRow struct {
	Lane           Lane            `json:"lane"`
	Mode           TransportMode   `json:"mode"`
	Equipment      EquipmentCode   `json:"equipment"`
	ShipBy         time.Time       `json:"ship_by"`
	Lines          []DemandLineID  `json:"lines"`
	TotalPacks     int             `json:"total_packs"`
	TotalWeight    decimal.Decimal `json:"total_weight_kg"`
	TotalVolume    decimal.Decimal `json:"total_volume_m3"`
	EquipmentCount int             `json:"equipment_count"`
	Utilization    float64         `json:"utilization"`
	Cost           decimal.Decimal `json:"cost"`
	Currency       string          `json:"currency,omitempty"`
}

// ExcessRow reports a tranche that could not be planned or consolidated
type ExcessRow struct {
	DemandLine    DemandLineID        `json:"demand_line"`
	SequenceIndex int                 `json:"sequence_index"`
	PackQty       int                 `json:"pack_qty"`
	Reason        InfeasibilityReason `json:"reason"`
	Detail        string              `json:"detail,omitempty"`
}
