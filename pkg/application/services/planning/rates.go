package planning

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
)

// RateRequest identifies the rate card being sought
type RateRequest struct {
	Lane      entities.Lane
	Scope     entities.ServiceScope
	Equipment entities.EquipmentCode
	Mode      entities.TransportMode
	Date      time.Time
	Flags     []entities.ConditionFlag
}

// RatedShipment carries the measurable quantities a charge basis multiplies by
type RatedShipment struct {
	ChargeableWeight decimal.Decimal // kg
	Volume           decimal.Decimal // m³
	Units            int             // equipment count, or packs when no equipment concept applies
	Flags            []entities.ConditionFlag
}

// QuoteItem is one priced line in a quote
type QuoteItem struct {
	Code   string              `json:"code"`
	Name   string              `json:"name"`
	Type   entities.ChargeType `json:"type"`
	Amount decimal.Decimal     `json:"amount"`
}

// Quote is the full priced result for one rate card and shipment
type Quote struct {
	Card         entities.RateCardID `json:"rate_card"`
	Carrier      string              `json:"carrier,omitempty"`
	Currency     string              `json:"currency"`
	BaseTotal    decimal.Decimal     `json:"base_total"`
	ChargesTotal decimal.Decimal     `json:"charges_total"`
	GrandTotal   decimal.Decimal     `json:"grand_total"`
	Items        []QuoteItem         `json:"items"`
}

// RateEngine resolves effective-dated rate cards and prices shipments
// against them
type RateEngine struct {
	repo repositories.RateRepository
}

// NewRateEngine creates a rate engine over a rate snapshot
func NewRateEngine(repo repositories.RateRepository) *RateEngine {
	return &RateEngine{repo: repo}
}

// ResolveCard selects the applicable rate card for the request. Candidates
// must be active, cover the rating date, match lane/scope/equipment/mode
// exactly, and either declare no conditions or a superset of the requested
// flags. When several candidates remain the most recently effective wins; a
// residual tie is an AmbiguousRateError, never an arbitrary pick. Zero
// candidates yield a NotFoundError so the caller can report NoRateFound.
func (e *RateEngine) ResolveCard(req RateRequest) (*entities.RateCard, error) {
	cards, err := e.repo.GetCardsInEffect(req.Lane, req.Scope, req.Equipment, req.Mode, req.Date)
	if err != nil {
		return nil, err
	}

	var candidates []*entities.RateCard
	for _, c := range cards {
		if !c.Active {
			continue
		}
		if !c.CoversConditions(req.Flags) {
			continue
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		return nil, &entities.NotFoundError{
			Kind: "rate card",
			Key:  req.Lane.OriginCode + "-" + req.Lane.DestCode + "/" + string(req.Scope) + "/" + string(req.Equipment),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EffectiveFrom.After(candidates[j].EffectiveFrom)
	})

	if len(candidates) > 1 && candidates[1].EffectiveFrom.Equal(candidates[0].EffectiveFrom) {
		var ids []entities.RateCardID
		for _, c := range candidates {
			if c.EffectiveFrom.Equal(candidates[0].EffectiveFrom) {
				ids = append(ids, c.ID)
			}
		}
		return nil, &entities.AmbiguousRateError{
			Lane:      req.Lane,
			Scope:     req.Scope,
			Equipment: req.Equipment,
			Cards:     ids,
		}
	}
	return candidates[0], nil
}

// Price totals the card's charges against the shipment on the rating date.
// BASE charges are always included; ACCESSORIAL charges only when their
// condition predicate matches the shipment's flags and their own effective
// window covers the date.
func (e *RateEngine) Price(card *entities.RateCard, sh *RatedShipment, on time.Time) (*Quote, error) {
	charges, err := e.repo.GetCharges(card.ID)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Card:     card.ID,
		Carrier:  card.Carrier,
		Currency: card.Currency,
	}

	for _, ch := range charges {
		if !ch.AppliesOn(on) {
			continue
		}
		if ch.Type == entities.ChargeAccessorial && ch.Condition != "" && !hasFlag(sh.Flags, ch.Condition) {
			continue
		}

		amount := chargeAmount(ch, sh)
		quote.Items = append(quote.Items, QuoteItem{
			Code:   ch.Code,
			Name:   ch.Name,
			Type:   ch.Type,
			Amount: amount,
		})
		if ch.Type == entities.ChargeBase {
			quote.BaseTotal = quote.BaseTotal.Add(amount)
		} else {
			quote.ChargesTotal = quote.ChargesTotal.Add(amount)
		}
	}

	quote.GrandTotal = quote.BaseTotal.Add(quote.ChargesTotal).Round(2)
	quote.BaseTotal = quote.BaseTotal.Round(2)
	quote.ChargesTotal = quote.ChargesTotal.Round(2)
	return quote, nil
}

// Rate resolves the applicable card and prices the shipment in one step
func (e *RateEngine) Rate(req RateRequest, sh *RatedShipment) (*entities.RateCard, *Quote, error) {
	card, err := e.ResolveCard(req)
	if err != nil {
		return nil, nil, err
	}
	quote, err := e.Price(card, sh, req.Date)
	if err != nil {
		return nil, nil, err
	}
	return card, quote, nil
}

func chargeAmount(ch *entities.RateCharge, sh *RatedShipment) decimal.Decimal {
	var amount decimal.Decimal
	switch ch.Basis {
	case entities.BasisPerWeight:
		amount = ch.Amount.Mul(sh.ChargeableWeight)
	case entities.BasisPerVolume:
		amount = ch.Amount.Mul(sh.Volume)
	case entities.BasisPerUnit:
		amount = ch.Amount.Mul(decimal.NewFromInt(int64(sh.Units)))
	default:
		amount = ch.Amount
	}

	if ch.MinAmount.GreaterThan(decimal.Zero) && amount.LessThan(ch.MinAmount) {
		amount = ch.MinAmount
	}
	if ch.MaxAmount.GreaterThan(decimal.Zero) && amount.GreaterThan(ch.MaxAmount) {
		amount = ch.MaxAmount
	}
	return amount.Round(2)
}

func hasFlag(flags []entities.ConditionFlag, flag entities.ConditionFlag) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
