package memory

// Snapshot bundles one consistent set of reference-data repositories for a
// planning run. Loaders hydrate it once before planning begins; the core only
// reads from it afterwards.
type Snapshot struct {
	SKUs      *SKURepository
	PackRules *PackRuleRepository
	LeadTimes *LeadTimeRepository
	Equipment *EquipmentRepository
	Rates     *RateRepository
	Demands   *DemandRepository
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SKUs:      NewSKURepository(64),
		PackRules: NewPackRuleRepository(64),
		LeadTimes: NewLeadTimeRepository(),
		Equipment: NewEquipmentRepository(16),
		Rates:     NewRateRepository(),
		Demands:   NewDemandRepository(),
	}
}
