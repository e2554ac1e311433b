package memory

import (
	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
)

// DemandRepository provides in-memory demand line storage
type DemandRepository struct {
	lines []entities.DemandLine
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{
		lines: []entities.DemandLine{},
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemandLines loads demand lines into the repository
func (r *DemandRepository) LoadDemandLines(lines []*entities.DemandLine) error {
	for _, line := range lines {
		r.lines = append(r.lines, *line)
	}
	return nil
}

// GetDemandLines returns all demand lines
func (r *DemandRepository) GetDemandLines() ([]*entities.DemandLine, error) {
	var lines []*entities.DemandLine
	for i := range r.lines {
		lines = append(lines, &r.lines[i])
	}
	return lines, nil
}
