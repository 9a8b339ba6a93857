package engine

import "github.com/shopspring/decimal"

// resolveConflicts rewrites competing candidates so that at most one
// positive discount survives per action family. The candidate with the
// greatest amount wins; ties keep the first in priority order. Everything
// else in a contested family is suppressed: amount zeroed, conflict set.
// Shipping candidates are exempt, as are actions registered without a
// family.
func resolveConflicts(registry *Registry, candidates []DiscountResult) []DiscountResult {
	out := make([]DiscountResult, len(candidates))
	copy(out, candidates)

	byFamily := map[string][]int{}
	for i, candidate := range out {
		family := registry.family(candidate.ActionType)
		if family == "" || family == FamilyShipping {
			continue
		}
		byFamily[family] = append(byFamily[family], i)
	}

	for _, indices := range byFamily {
		positive := 0
		winner := -1
		best := decimal.Zero
		for _, i := range indices {
			if !out[i].Amount.IsPositive() {
				continue
			}
			positive++
			if out[i].Amount.GreaterThan(best) {
				best = out[i].Amount
				winner = i
			}
		}
		if positive < 2 {
			continue
		}
		for _, i := range indices {
			if i == winner {
				continue
			}
			out[i].Amount = decimal.Zero
			out[i].Conflict = true
		}
	}

	return out
}
