package memory

import (
	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	"github.com/inboundlogistics/transplan/pkg/domain/repositories"
)

// PackRuleRepository provides in-memory packaging rule storage
type PackRuleRepository struct {
	rules    []entities.PackagingRule
	byID     map[entities.PackRuleID]int
	byPart   map[entities.PartNumber][]int
	defaults map[entities.PartNumber]int
}

// NewPackRuleRepository creates a new in-memory packaging rule repository
func NewPackRuleRepository(expectedRules int) *PackRuleRepository {
	return &PackRuleRepository{
		rules:    make([]entities.PackagingRule, 0, expectedRules),
		byID:     make(map[entities.PackRuleID]int, expectedRules),
		byPart:   make(map[entities.PartNumber][]int),
		defaults: make(map[entities.PartNumber]int),
	}
}

// Verify interface compliance
var _ repositories.PackRuleRepository = (*PackRuleRepository)(nil)

// LoadRules loads packaging rules into the repository
func (r *PackRuleRepository) LoadRules(rules []*entities.PackagingRule) error {
	for _, rule := range rules {
		r.AddRule(*rule)
	}
	return nil
}

// AddRule adds a packaging rule. The first rule seen for a part becomes its
// default unless a later rule is explicitly flagged IsDefault.
func (r *PackRuleRepository) AddRule(rule entities.PackagingRule) {
	index := len(r.rules)
	r.byID[rule.ID] = index
	r.byPart[rule.PartNumber] = append(r.byPart[rule.PartNumber], index)
	if _, exists := r.defaults[rule.PartNumber]; !exists || rule.IsDefault {
		r.defaults[rule.PartNumber] = index
	}
	r.rules = append(r.rules, rule)
}

// GetDefaultRule resolves the SKU's default packaging rule
func (r *PackRuleRepository) GetDefaultRule(pn entities.PartNumber) (*entities.PackagingRule, error) {
	index, exists := r.defaults[pn]
	if !exists {
		return nil, &entities.NotFoundError{Kind: "packaging rule", Key: string(pn)}
	}
	return &r.rules[index], nil
}

// GetRule resolves an explicitly referenced rule
func (r *PackRuleRepository) GetRule(id entities.PackRuleID) (*entities.PackagingRule, error) {
	index, exists := r.byID[id]
	if !exists {
		return nil, &entities.NotFoundError{Kind: "packaging rule", Key: string(id)}
	}
	return &r.rules[index], nil
}

// GetRulesForPart returns every rule configured for a part
func (r *PackRuleRepository) GetRulesForPart(pn entities.PartNumber) ([]*entities.PackagingRule, error) {
	var rules []*entities.PackagingRule
	for _, index := range r.byPart[pn] {
		rules = append(rules, &r.rules[index])
	}
	return rules, nil
}
