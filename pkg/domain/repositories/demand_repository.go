package repositories

import "github.com/inboundlogistics/transplan/pkg/domain/entities"

// DemandRepository provides access to raw demand lines
type DemandRepository interface {
	GetDemandLines() ([]*entities.DemandLine, error)
	LoadDemandLines(lines []*entities.DemandLine) error
}
