package memory

import (
	"sort"

	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
)

// EquipmentRepository provides in-memory equipment preset storage
type EquipmentRepository struct {
	presets []entities.EquipmentPreset
	byCode  map[entities.EquipmentCode]int
}

// NewEquipmentRepository creates a new in-memory equipment repository
func NewEquipmentRepository(expectedPresets int) *EquipmentRepository {
	return &EquipmentRepository{
		presets: make([]entities.EquipmentPreset, 0, expectedPresets),
		byCode:  make(map[entities.EquipmentCode]int, expectedPresets),
	}
}

// Verify interface compliance
var _ repositories.EquipmentRepository = (*EquipmentRepository)(nil)

// LoadPresets loads equipment presets into the repository
func (r *EquipmentRepository) LoadPresets(presets []*entities.EquipmentPreset) error {
	for _, p := range presets {
		r.AddPreset(*p)
	}
	return nil
}

// AddPreset adds an equipment preset to the repository
func (r *EquipmentRepository) AddPreset(p entities.EquipmentPreset) {
	r.byCode[p.Code] = len(r.presets)
	r.presets = append(r.presets, p)
}

// GetPreset returns the preset for an equipment code
func (r *EquipmentRepository) GetPreset(code entities.EquipmentCode) (*entities.EquipmentPreset, error) {
	index, exists := r.byCode[code]
	if !exists {
		return nil, &entities.NotFoundError{Kind: "equipment preset", Key: string(code)}
	}
	return &r.presets[index], nil
}

// GetActivePresets returns active presets in stable (mode, code) order
func (r *EquipmentRepository) GetActivePresets() ([]*entities.EquipmentPreset, error) {
	var presets []*entities.EquipmentPreset
	for i := range r.presets {
		if r.presets[i].Active {
			presets = append(presets, &r.presets[i])
		}
	}
	sort.Slice(presets, func(i, j int) bool {
		if presets[i].Mode != presets[j].Mode {
			return presets[i].Mode < presets[j].Mode
		}
		return presets[i].Code < presets[j].Code
	})
	return presets, nil
}

// GetPresetsForMode returns active presets for one mode in code order
func (r *EquipmentRepository) GetPresetsForMode(mode entities.TransportMode) ([]*entities.EquipmentPreset, error) {
	all, err := r.GetActivePresets()
	if err != nil {
		return nil, err
	}
	var presets []*entities.EquipmentPreset
	for _, p := range all {
		if p.Mode == mode {
			presets = append(presets, p)
		}
	}
	return presets, nil
}
