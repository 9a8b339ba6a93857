package rules

import "strings"

// Built-in condition types.
const (
	ConditionCartTotal       = "cart_total"
	ConditionItemCount       = "item_count"
	ConditionSpecificProduct = "specific_product"
	ConditionProductCount    = "product_count"
)

// Built-in action types.
const (
	ActionPercentageDiscount = "percentage_discount"
	ActionFixedDiscount      = "fixed_discount"
	ActionFreeShipping       = "free_shipping"
	ActionCheapestFree       = "cheapest_free"
	ActionMostExpensiveFree  = "most_expensive_free"
	ActionNthCheapestFree    = "nth_cheapest_free"
	ActionNthExpensiveFree   = "nth_expensive_free"
	ActionBundleCheapestFree = "bundle_cheapest_free"
)

// Well-known parameter keys.
const (
	ParamMinQuantity = "min_quantity"
	ParamPosition    = "position"
	ParamMinItems    = "min_items"
)

// Condition gates a rule on the current cart state. Value is kept as raw
// text; evaluators parse it and treat unparsable input as never satisfied.
type Condition struct {
	Type   string            `json:"type" validate:"required"`
	Value  string            `json:"value"`
	Params map[string]string `json:"params,omitempty"`
}

// Param returns the named condition parameter or a fallback.
func (c Condition) Param(key, fallback string) string {
	if v, ok := c.Params[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// Action describes the discount a rule grants when its condition holds.
// Exclusive actions halt evaluation of lower-priority rules once applied.
type Action struct {
	Type      string            `json:"type" validate:"required"`
	Value     string            `json:"value"`
	Params    map[string]string `json:"params,omitempty"`
	Exclusive bool              `json:"exclusive"`
}

// Param returns the named action parameter or a fallback.
func (a Action) Param(key, fallback string) string {
	if v, ok := a.Params[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// Rule pairs one condition with one action. Rules carry a category label;
// only a single category may have active rules at any time, enforced on the
// write path (see PlanDeactivations).
type Rule struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=120"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Priority    int       `json:"priority"`
	Active      bool      `json:"active"`
	Condition   Condition `json:"condition"`
	Action      Action    `json:"action"`
}

// ResolvedCategory returns the explicit category, falling back to the
// condition type the way the write path defaults it.
func (r Rule) ResolvedCategory() string {
	if r.Category != "" {
		return r.Category
	}
	return r.Condition.Type
}

// WellFormed reports whether the rule carries enough configuration to be
// evaluated at all. Malformed rules are skipped, never an error.
func (r Rule) WellFormed() bool {
	return r.Condition.Type != "" && r.Action.Type != ""
}

// Clone deep-copies the rule so stored snapshots stay immutable.
func (r Rule) Clone() Rule {
	out := r
	out.Condition.Params = cloneParams(r.Condition.Params)
	out.Action.Params = cloneParams(r.Action.Params)
	return out
}

func cloneParams(params map[string]string) map[string]string {
	if params == nil {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
