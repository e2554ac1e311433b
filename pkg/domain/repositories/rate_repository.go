package repositories

import (
	"time"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

// RateRepository provides read-only access to rate cards and their charges
type RateRepository interface {
	// GetCardsInEffect returns every card for the exact lane/scope/equipment/mode
	// key whose validity window covers the rating date, active or not,
	// in effective-from ascending order. Scope match is exact, not subsumed.
	GetCardsInEffect(lane entities.Lane, scope entities.ServiceScope,
		equipment entities.EquipmentCode, mode entities.TransportMode,
		on time.Time) ([]*entities.RateCard, error)
	// GetCharges returns the charges belonging to one rate card
	GetCharges(card entities.RateCardID) ([]*entities.RateCharge, error)
}
