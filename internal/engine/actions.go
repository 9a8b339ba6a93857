package engine

import (
	"github.com/nextorder/promo-engine/internal/rules"
	"github.com/nextorder/promo-engine/pkg/money"
	"github.com/shopspring/decimal"
)

func percentageDiscountAction(act rules.Action, cart *CartView) ActionOutcome {
	pct, ok := money.Parse(act.Value)
	if !ok {
		return ActionOutcome{Amount: decimal.Zero}
	}
	// Out-of-range percentages are clamped, not rejected.
	return ActionOutcome{Amount: money.Percent(cart.Subtotal, money.ClampPercent(pct))}
}

func fixedDiscountAction(act rules.Action, cart *CartView) ActionOutcome {
	value, ok := money.Parse(act.Value)
	if !ok || value.IsNegative() {
		return ActionOutcome{Amount: decimal.Zero}
	}
	// A fixed discount never exceeds the subtotal it is discounting.
	return ActionOutcome{Amount: money.Min(value, cart.Subtotal)}
}

func freeShippingAction(rules.Action, *CartView) ActionOutcome {
	return ActionOutcome{Amount: decimal.Zero, FreeShipping: true}
}

func cheapestFreeAction(_ rules.Action, cart *CartView) ActionOutcome {
	return nthUnitPrice(cart, 1, false)
}

func mostExpensiveFreeAction(_ rules.Action, cart *CartView) ActionOutcome {
	return nthUnitPrice(cart, 1, true)
}

func nthCheapestFreeAction(act rules.Action, cart *CartView) ActionOutcome {
	return nthUnitPrice(cart, positionParam(act), false)
}

func nthExpensiveFreeAction(act rules.Action, cart *CartView) ActionOutcome {
	return nthUnitPrice(cart, positionParam(act), true)
}

// bundleCheapestFreeAction implements the stock "buy N, get the cheapest
// free" promotion: every full group of min_items units makes one cheapest
// unit free.
func bundleCheapestFreeAction(act rules.Action, cart *CartView) ActionOutcome {
	minItems, ok := money.ParseInt(act.Param(rules.ParamMinItems, "4"))
	if !ok || minItems < 1 {
		return ActionOutcome{Amount: decimal.Zero}
	}

	prices := cart.unitPrices()
	groups := len(prices) / minItems
	total := decimal.Zero
	for i := 0; i < groups; i++ {
		total = total.Add(prices[i])
	}
	return ActionOutcome{Amount: total}
}

func positionParam(act rules.Action) int {
	position, ok := money.ParseInt(act.Param(rules.ParamPosition, "1"))
	if !ok {
		return 0
	}
	return position
}

// nthUnitPrice returns the price of the nth cheapest (or, descending, nth
// most expensive) unit in the cart, or zero when fewer than n priced units
// exist.
func nthUnitPrice(cart *CartView, position int, descending bool) ActionOutcome {
	if position < 1 {
		return ActionOutcome{Amount: decimal.Zero}
	}
	prices := cart.unitPrices()
	if len(prices) < position {
		return ActionOutcome{Amount: decimal.Zero}
	}
	index := position - 1
	if descending {
		index = len(prices) - position
	}
	return ActionOutcome{Amount: prices[index]}
}
