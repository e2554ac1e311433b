package repositories

import "github.com/inboundlogistics/transplan/pkg/domain/entities"

// EquipmentRepository provides read-only access to equipment presets
type EquipmentRepository interface {
	GetPreset(code entities.EquipmentCode) (*entities.EquipmentPreset, error)
	// GetActivePresets returns active presets in stable (mode, code) order
	GetActivePresets() ([]*entities.EquipmentPreset, error)
	GetPresetsForMode(mode entities.TransportMode) ([]*entities.EquipmentPreset, error)
}
