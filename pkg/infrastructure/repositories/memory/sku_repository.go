package memory

import (
	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
)

// SKURepository provides in-memory SKU master storage
type SKURepository struct {
	skus    []entities.SKU
	skusMap map[entities.PartNumber]int
}

// NewSKURepository creates a new in-memory SKU repository
func NewSKURepository(expectedSKUs int) *SKURepository {
	return &SKURepository{
		skus:    make([]entities.SKU, 0, expectedSKUs),
		skusMap: make(map[entities.PartNumber]int, expectedSKUs),
	}
}

// Verify interface compliance
var _ repositories.SKURepository = (*SKURepository)(nil)

// LoadSKUs loads SKUs into the repository
func (r *SKURepository) LoadSKUs(skus []*entities.SKU) error {
	for _, sku := range skus {
		r.AddSKU(*sku)
	}
	return nil
}

// AddSKU adds a SKU to the repository
func (r *SKURepository) AddSKU(sku entities.SKU) {
	r.skusMap[sku.PartNumber] = len(r.skus)
	r.skus = append(r.skus, sku)
}

// GetSKU returns master data for a part number
func (r *SKURepository) GetSKU(pn entities.PartNumber) (*entities.SKU, error) {
	index, exists := r.skusMap[pn]
	if !exists {
		return nil, &entities.NotFoundError{Kind: "sku", Key: string(pn)}
	}
	return &r.skus[index], nil
}

// GetAllSKUs returns all SKUs
func (r *SKURepository) GetAllSKUs() ([]*entities.SKU, error) {
	var skus []*entities.SKU
	for i := range r.skus {
		skus = append(skus, &r.skus[i])
	}
	return skus, nil
}
