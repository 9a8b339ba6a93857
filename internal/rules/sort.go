package rules

import "sort"

// SortedByPriority returns a copy ordered by ascending priority. The sort is
// stable so ties keep their insertion order.
func SortedByPriority(ruleSet []Rule) []Rule {
	out := make([]Rule, len(ruleSet))
	copy(out, ruleSet)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}
