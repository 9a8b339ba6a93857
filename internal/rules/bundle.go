package rules

import (
	"strconv"

	"github.com/nextorder/promo-engine/pkg/config"
)

// NewBundlePromotion builds the stock "buy N, get the cheapest free"
// promotion from settings. Storefronts that want the legacy behavior save
// this rule once and let the engine do the rest.
func NewBundlePromotion(cfg config.PromotionConfig) Rule {
	minItems := cfg.MinItems
	if minItems < 1 {
		minItems = 4
	}
	count := strconv.Itoa(minItems)

	return Rule{
		Name:        cfg.DiscountLabel,
		Description: "Every " + count + " items in the cart make the cheapest one free.",
		Category:    ConditionItemCount,
		Priority:    10,
		Active:      true,
		Condition: Condition{
			Type:  ConditionItemCount,
			Value: count,
		},
		Action: Action{
			Type:   ActionBundleCheapestFree,
			Params: map[string]string{ParamMinItems: count},
		},
	}
}
