package memory

import (
	"strings"
	"time"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
	"github.com/inboundlogistics/transplan/pkg/domain/services"
)

// RateRepository provides in-memory rate card storage with an
// interval index per lane/scope/equipment/mode key
type RateRepository struct {
	cards   []entities.RateCard
	charges map[entities.RateCardID][]entities.RateCharge
	indexes map[string]*services.Index[*entities.RateCard]
}

// NewRateRepository creates a new in-memory rate repository
func NewRateRepository() *RateRepository {
	return &RateRepository{
		charges: make(map[entities.RateCardID][]entities.RateCharge),
		indexes: make(map[string]*services.Index[*entities.RateCard]),
	}
}

// Verify interface compliance
var _ repositories.RateRepository = (*RateRepository)(nil)

// LoadCards loads rate cards and rebuilds the interval indexes
func (r *RateRepository) LoadCards(cards []*entities.RateCard) error {
	for _, c := range cards {
		r.cards = append(r.cards, *c)
	}
	r.rebuildIndexes()
	return nil
}

// LoadCharges loads rate charges keyed by their owning card
func (r *RateRepository) LoadCharges(charges []*entities.RateCharge) error {
	for _, ch := range charges {
		r.charges[ch.RateCard] = append(r.charges[ch.RateCard], *ch)
	}
	return nil
}

// AddCard adds a single rate card and rebuilds the affected index
func (r *RateRepository) AddCard(card entities.RateCard) {
	r.cards = append(r.cards, card)
	r.rebuildIndexes()
}

// AddCharge adds a single rate charge
func (r *RateRepository) AddCharge(charge entities.RateCharge) {
	r.charges[charge.RateCard] = append(r.charges[charge.RateCard], charge)
}

// GetCardsInEffect returns every card for the exact key whose window covers
// the rating date, in effective-from ascending order
func (r *RateRepository) GetCardsInEffect(lane entities.Lane, scope entities.ServiceScope,
	equipment entities.EquipmentCode, mode entities.TransportMode,
	on time.Time) ([]*entities.RateCard, error) {

	ix, exists := r.indexes[cardKey(lane, scope, equipment, mode)]
	if !exists {
		return nil, nil
	}
	return ix.At(on), nil
}

// GetCharges returns the charges belonging to one rate card
func (r *RateRepository) GetCharges(card entities.RateCardID) ([]*entities.RateCharge, error) {
	stored := r.charges[card]
	var charges []*entities.RateCharge
	for i := range stored {
		charges = append(charges, &stored[i])
	}
	return charges, nil
}

// OverlapWarnings returns card ID pairs within one key whose validity windows
// overlap. Soft data-quality signal surfaced at load time, not enforced.
func (r *RateRepository) OverlapWarnings() [][2]entities.RateCardID {
	var warnings [][2]entities.RateCardID
	for _, ix := range r.indexes {
		for _, pair := range ix.Overlaps() {
			warnings = append(warnings, [2]entities.RateCardID{pair[0].ID, pair[1].ID})
		}
	}
	return warnings
}

func (r *RateRepository) rebuildIndexes() {
	grouped := make(map[string][]*entities.RateCard)
	for i := range r.cards {
		card := &r.cards[i]
		key := cardKey(card.Lane, card.Scope, card.Equipment, card.Mode)
		grouped[key] = append(grouped[key], card)
	}
	r.indexes = make(map[string]*services.Index[*entities.RateCard], len(grouped))
	for key, cards := range grouped {
		r.indexes[key] = services.NewIndex(cards)
	}
}

func cardKey(lane entities.Lane, scope entities.ServiceScope,
	equipment entities.EquipmentCode, mode entities.TransportMode) string {
	parts := []string{
		string(lane.OriginType), lane.OriginCode,
		string(lane.DestType), lane.DestCode,
		string(scope), string(equipment), string(mode),
	}
	return strings.ToUpper(strings.Join(parts, "|"))
}
