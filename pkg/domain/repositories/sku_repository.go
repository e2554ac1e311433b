package repositories

import "github.com/inboundlogistics/transplan/pkg/domain/entities"

// SKURepository provides read-only access to the SKU master snapshot
type SKURepository interface {
	GetSKU(pn entities.PartNumber) (*entities.SKU, error)
	GetAllSKUs() ([]*entities.SKU, error)
}
