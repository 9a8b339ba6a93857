package engine

import "github.com/shopspring/decimal"

// DiscountResult is one candidate discount produced by an evaluation pass.
type DiscountResult struct {
	RuleID     int64  `json:"rule_id"`
	RuleName   string `json:"rule_name"`
	Category   string `json:"category,omitempty"`
	ActionType string `json:"action_type"`
	// Amount to subtract from the cart total. Forced to zero when the
	// candidate lost conflict resolution.
	Amount       decimal.Decimal `json:"amount"`
	FreeShipping bool            `json:"free_shipping"`
	// Conflict marks candidates suppressed in favor of a larger discount in
	// the same action family. Kept in the output for diagnostics.
	Conflict bool `json:"conflict"`
	// Exclusive mirrors the rule action's flag; when set, evaluation stopped
	// after this rule.
	Exclusive bool `json:"exclusive"`
}

// Applied reports whether the result actually grants something.
func (r DiscountResult) Applied() bool {
	return r.Amount.IsPositive() || r.FreeShipping
}
