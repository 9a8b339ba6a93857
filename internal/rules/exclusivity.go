package rules

// PlanDeactivations computes which rules must be switched off so that only
// the activated rule's category stays active. Pure: it inspects the full
// rule set and returns the ids to deactivate; the store persists the whole
// batch in a single transaction, so concurrent activations cannot leave two
// categories active at once.
//
// Rules whose category matches the activated rule's resolved category are
// untouched; every other currently-active rule, including rules with no
// category of their own, is scheduled for deactivation.
func PlanDeactivations(activated Rule, all []Rule) []int64 {
	category := activated.ResolvedCategory()
	if category == "" {
		return nil
	}

	var ids []int64
	for _, rule := range all {
		if rule.ID == activated.ID {
			continue
		}
		if rule.Category == category {
			continue
		}
		if rule.Active {
			ids = append(ids, rule.ID)
		}
	}
	return ids
}
