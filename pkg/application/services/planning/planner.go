package planning

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/inboundlogistics/transplan/pkg/application/dto"
	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
)

// Config holds the run-level knobs for one planning invocation
type Config struct {
	// ReferenceDate is "today" for feasibility checks; zero = time.Now truncated to day
	ReferenceDate time.Time
	// DefaultLane rates lines that carry no lane of their own
	DefaultLane entities.Lane
	// Scope requested for rating; empty = P2P
	Scope entities.ServiceScope
	// Modes restricts evaluation; empty = every mode with an active preset
	Modes []entities.TransportMode
	// Flags are shipment condition flags applied to every line of the run
	Flags []entities.ConditionFlag
	// Windows are the allocation constraints; empty = one unbounded window
	Windows []AllocationWindow
	// MaxTranchePacks caps a single tranche; 0 = uncapped
	MaxTranchePacks int
	// ConsolidationWindowDays groups ship-by dates into shipment buckets; 0 = 7
	ConsolidationWindowDays int
	// Workers bounds parallel line evaluation; 0 = NumCPU
	Workers int
}

// Planner runs the full planning and rating pipeline over a reference-data
// snapshot. The snapshot is read-only for the duration of a run, so
// independent demand lines are evaluated in parallel without coordination.
type Planner struct {
	skus      repositories.SKURepository
	packRules repositories.PackRuleRepository
	rateRepo  repositories.RateRepository
	equipment repositories.EquipmentRepository
	leadTimes *LeadTimeResolver
	rates     *RateEngine
	builder   *ShipmentBuilder
	config    Config
}

// NewPlanner creates a planner over the given snapshot repositories
func NewPlanner(
	skus repositories.SKURepository,
	packRules repositories.PackRuleRepository,
	leadTimes repositories.LeadTimeRepository,
	equipment repositories.EquipmentRepository,
	rates repositories.RateRepository,
	config Config,
) *Planner {
	if config.ReferenceDate.IsZero() {
		now := time.Now().UTC()
		config.ReferenceDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if config.Scope == "" {
		config.Scope = entities.ScopePortToPort
	}
	if len(config.Windows) == 0 {
		config.Windows = []AllocationWindow{{Name: "DEFAULT"}}
	}
	if config.ConsolidationWindowDays == 0 {
		config.ConsolidationWindowDays = 7
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Planner{
		skus:      skus,
		packRules: packRules,
		rateRepo:  rates,
		equipment: equipment,
		leadTimes: NewLeadTimeResolver(leadTimes),
		rates:     NewRateEngine(rates),
		builder:   NewShipmentBuilder(equipment),
		config:    config,
	}
}

type lineOutcome struct {
	result   dto.LineResult
	accepted []AcceptedOption
	excess   []entities.ExcessRow
}

// Run plans every demand line and consolidates the accepted recommendations
// into shipments. Per-line errors are captured on the line's result and
// never abort the run; the caller always receives a complete result.
func (p *Planner) Run(ctx context.Context, lines []*entities.DemandLine) (*dto.PlanResult, error) {
	outcomes := make([]lineOutcome, len(lines))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				outcomes[i] = p.planLine(lines[i])
			}
		}()
	}
	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &dto.PlanResult{ReferenceDate: p.config.ReferenceDate}
	var accepted []AcceptedOption
	for _, o := range outcomes {
		result.Lines = append(result.Lines, o.result)
		accepted = append(accepted, o.accepted...)
		result.Excess = append(result.Excess, o.excess...)
	}

	shipments, lateExcess, err := p.builder.Build(accepted, p.config.ConsolidationWindowDays, p.config.ReferenceDate)
	if err != nil {
		return nil, err
	}
	result.Shipments = shipments
	result.Excess = append(result.Excess, lateExcess...)

	if warner, ok := p.rateRepo.(interface {
		OverlapWarnings() [][2]entities.RateCardID
	}); ok {
		result.RateWarnings = warner.OverlapWarnings()
	}
	return result, nil
}

func (p *Planner) planLine(line *entities.DemandLine) lineOutcome {
	out := lineOutcome{result: dto.LineResult{DemandLine: line.ID, PartNumber: line.PartNumber}}

	sku, err := p.skus.GetSKU(line.PartNumber)
	if err != nil {
		out.result.Errors = append(out.result.Errors, classifyError(err, ""))
		return out
	}

	rule, err := p.resolveRule(line)
	if err != nil {
		out.result.Errors = append(out.result.Errors, classifyError(err, ""))
		return out
	}

	uom := line.UnitOfMeasure
	if uom == "" {
		uom = sku.UnitOfMeasure
	}
	conv, err := ConvertDemand(line.RawQty, uom, rule)
	if err != nil {
		out.result.Errors = append(out.result.Errors, classifyError(err, ""))
		return out
	}
	out.result.RequiredUnits = conv.RequiredUnits
	out.result.ShippedUnits = conv.ShippedUnits
	out.result.ExcessUnits = conv.ExcessUnits
	out.result.TotalPacks = conv.Packs

	tranches, allocErr := AllocateTranches(line.ID, conv.Packs, p.config.Windows, p.config.MaxTranchePacks)
	if allocErr != nil {
		out.result.Errors = append(out.result.Errors, classifyError(allocErr, ""))
	}

	lane := line.Lane
	if lane.IsZero() {
		lane = p.config.DefaultLane
	}

	for _, tranche := range tranches {
		tr := dto.TrancheResult{Tranche: tranche}
		if tranche.Resolved {
			recs, errs := p.evaluateTranche(line, sku, rule, lane, tranche.PackQty)
			tr.Recommendations = RankRecommendations(recs, line.ManualMode)
			out.result.Errors = appendNewErrors(out.result.Errors, errs)
			out.collectAccepted(tranche, tr.Recommendations, lane, rule)
		} else {
			out.excess = append(out.excess, entities.ExcessRow{
				DemandLine:    tranche.DemandLine,
				SequenceIndex: tranche.SequenceIndex,
				PackQty:       tranche.PackQty,
				Reason:        entities.ReasonAllocationShortfall,
				Detail:        "no allocation window could accommodate the remainder",
			})
		}
		out.result.Tranches = append(out.result.Tranches, tr)
	}
	return out
}

// evaluateTranche builds the unranked recommendation set for one tranche:
// every active preset in the requested modes gets a lead-time, estimate and
// rate pass. Modes without lead-time data are excluded, not fatal.
func (p *Planner) evaluateTranche(line *entities.DemandLine, sku *entities.SKU,
	rule *entities.PackagingRule, lane entities.Lane, packs int) ([]entities.Recommendation, []dto.PlanError) {

	var recs []entities.Recommendation
	var errs []dto.PlanError

	for _, preset := range p.candidatePresets() {
		days, err := p.leadTimes.Resolve(line, sku, preset.Mode)
		if err != nil {
			errs = append(errs, classifyError(err, preset.Mode))
			continue
		}
		shipBy := ShipBy(line.NeedDate, days)
		feasible := Feasible(shipBy, p.config.ReferenceDate)

		est, err := EstimateLoad(packs, rule, preset)
		if err != nil {
			errs = append(errs, classifyError(err, preset.Mode))
			continue
		}

		rec := entities.Recommendation{
			Mode:             preset.Mode,
			Equipment:        preset.Code,
			LeadDays:         days,
			ShipBy:           shipBy,
			Feasible:         feasible,
			ChargeableWeight: est.ChargeableWeight,
			Utilization:      est.Utilization,
			EquipmentCount:   est.EquipmentCount,
		}
		if !feasible {
			rec.Reason = entities.ReasonLeadTimeInfeasible
		}

		units := est.EquipmentCount
		if units == 0 {
			units = packs
		}
		card, quote, err := p.rates.Rate(RateRequest{
			Lane:      lane,
			Scope:     p.config.Scope,
			Equipment: preset.Code,
			Mode:      preset.Mode,
			Date:      shipBy,
			Flags:     p.config.Flags,
		}, &RatedShipment{
			ChargeableWeight: est.ChargeableWeight,
			Volume:           est.TotalVolume,
			Units:            units,
			Flags:            p.config.Flags,
		})
		switch {
		case err == nil:
			rec.RateCard = card.ID
			rec.Carrier = card.Carrier
			rec.Currency = quote.Currency
			rec.Cost = quote.GrandTotal
			rec.Priced = true
		case isAmbiguous(err):
			// Ambiguity is a data-quality defect, fatal for this
			// lane/scope/equipment until the data is corrected.
			errs = append(errs, classifyError(err, preset.Mode))
			continue
		case isNotFound(err):
			rec.Feasible = false
			if rec.Reason == entities.ReasonNone {
				rec.Reason = entities.ReasonNoRateFound
			}
		default:
			errs = append(errs, classifyError(err, preset.Mode))
			continue
		}
		recs = append(recs, rec)
	}
	return recs, errs
}

// collectAccepted records the tranche's default accepted recommendation
// (rank 1) for shipment consolidation, or an excess row when nothing
// feasible exists.
func (o *lineOutcome) collectAccepted(tranche entities.Tranche,
	ranked []entities.Recommendation, lane entities.Lane, rule *entities.PackagingRule) {

	if len(ranked) > 0 && ranked[0].Feasible {
		best := ranked[0]
		o.accepted = append(o.accepted, AcceptedOption{
			DemandLine:    tranche.DemandLine,
			SequenceIndex: tranche.SequenceIndex,
			Lane:          lane,
			Mode:          best.Mode,
			Equipment:     best.Equipment,
			ShipBy:        best.ShipBy,
			PackQty:       tranche.PackQty,
			Rule:          rule,
			Cost:          best.Cost,
			Priced:        best.Priced,
			Currency:      best.Currency,
		})
		return
	}

	reason := entities.ReasonNoLeadTime
	if len(ranked) > 0 {
		reason = ranked[0].Reason
		if reason == entities.ReasonNone {
			reason = entities.ReasonLeadTimeInfeasible
		}
	}
	o.excess = append(o.excess, entities.ExcessRow{
		DemandLine:    tranche.DemandLine,
		SequenceIndex: tranche.SequenceIndex,
		PackQty:       tranche.PackQty,
		Reason:        reason,
	})
}

func (p *Planner) resolveRule(line *entities.DemandLine) (*entities.PackagingRule, error) {
	if line.PackRuleID != "" {
		rule, err := p.packRules.GetRule(line.PackRuleID)
		if err != nil {
			return nil, &entities.ConfigurationError{
				PartNumber: line.PartNumber,
				Reason:     "referenced packaging rule " + string(line.PackRuleID) + " does not exist",
			}
		}
		if rule.PartNumber != line.PartNumber {
			return nil, &entities.ConfigurationError{
				PartNumber: line.PartNumber,
				Reason:     "packaging rule " + string(line.PackRuleID) + " belongs to another SKU",
			}
		}
		return rule, nil
	}
	rule, err := p.packRules.GetDefaultRule(line.PartNumber)
	if err != nil {
		return nil, &entities.ConfigurationError{
			PartNumber: line.PartNumber,
			Reason:     "no applicable packaging rule",
		}
	}
	return rule, nil
}

func (p *Planner) candidatePresets() []*entities.EquipmentPreset {
	presets, err := p.equipment.GetActivePresets()
	if err != nil {
		return nil
	}
	if len(p.config.Modes) == 0 {
		return presets
	}
	var filtered []*entities.EquipmentPreset
	for _, preset := range presets {
		for _, mode := range p.config.Modes {
			if preset.Mode == mode {
				filtered = append(filtered, preset)
				break
			}
		}
	}
	return filtered
}

func classifyError(err error, mode entities.TransportMode) dto.PlanError {
	pe := dto.PlanError{Mode: mode, Message: err.Error()}
	var (
		confErr  *entities.ConfigurationError
		valErr   *entities.ValidationError
		nfErr    *entities.NotFoundError
		ambErr   *entities.AmbiguousRateError
		shortErr *entities.AllocationShortfall
	)
	switch {
	case errors.As(err, &confErr):
		pe.Code = dto.ErrConfiguration
	case errors.As(err, &valErr):
		pe.Code = dto.ErrValidation
	case errors.As(err, &nfErr):
		pe.Code = dto.ErrNotFound
	case errors.As(err, &ambErr):
		pe.Code = dto.ErrAmbiguousRate
	case errors.As(err, &shortErr):
		pe.Code = dto.ErrAllocationShortfall
	default:
		pe.Code = dto.ErrConfiguration
	}
	return pe
}

func isAmbiguous(err error) bool {
	var ambErr *entities.AmbiguousRateError
	return errors.As(err, &ambErr)
}

func isNotFound(err error) bool {
	var nfErr *entities.NotFoundError
	return errors.As(err, &nfErr)
}

// appendNewErrors merges per-tranche errors into the line's list, dropping
// exact duplicates so a mode missing lead-time data is reported once per line
func appendNewErrors(existing []dto.PlanError, incoming []dto.PlanError) []dto.PlanError {
	for _, e := range incoming {
		dup := false
		for _, have := range existing {
			if have == e {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, e)
		}
	}
	return existing
}
