package engine

import (
	"strings"

	"github.com/nextorder/promo-engine/internal/rules"
	"github.com/nextorder/promo-engine/pkg/money"
)

func cartTotalCondition(cond rules.Condition, cart *CartView) bool {
	min, ok := money.Parse(cond.Value)
	if !ok || min.IsNegative() {
		return false
	}
	return cart.Subtotal.GreaterThanOrEqual(min)
}

func itemCountCondition(cond rules.Condition, cart *CartView) bool {
	min, ok := money.ParseInt(cond.Value)
	if !ok || min < 0 {
		return false
	}
	return cart.ItemCount >= min
}

func specificProductCondition(cond rules.Condition, cart *CartView) bool {
	productID := strings.TrimSpace(cond.Value)
	if productID == "" {
		return false
	}
	minQty, ok := money.ParseInt(cond.Param(rules.ParamMinQuantity, "1"))
	if !ok || minQty < 1 {
		return false
	}
	return cart.productQuantity(productID) >= minQty
}

func productCountCondition(cond rules.Condition, cart *CartView) bool {
	min, ok := money.ParseInt(cond.Value)
	if !ok || min < 0 {
		return false
	}
	return cart.distinctProducts() >= min
}
