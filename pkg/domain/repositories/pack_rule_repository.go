package repositories

import "github.com/inboundlogistics/transplan/pkg/domain/entities"

// PackRuleRepository provides read-only access to packaging rules.
// Master-data maintenance happens outside the pipeline; rules are an
// immutable snapshot for the duration of one planning run.
type PackRuleRepository interface {
	// GetDefaultRule resolves the SKU's default packaging rule
	GetDefaultRule(pn entities.PartNumber) (*entities.PackagingRule, error)
	// GetRule resolves an explicitly referenced, possibly non-default rule
	GetRule(id entities.PackRuleID) (*entities.PackagingRule, error)
	GetRulesForPart(pn entities.PartNumber) ([]*entities.PackagingRule, error)
}
