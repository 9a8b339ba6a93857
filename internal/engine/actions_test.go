package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nextorder/promo-engine/internal/rules"
)

func requireAmount(t *testing.T, outcome ActionOutcome, want string) {
	t.Helper()
	expected := decimal.RequireFromString(want)
	if !outcome.Amount.Equal(expected) {
		t.Fatalf("amount = %s, want %s", outcome.Amount, expected)
	}
}

func TestPercentageDiscountAction(t *testing.T) {
	t.Parallel()

	cart := cartOf(40, 60)

	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"typical", "10", "10"},
		{"clamped high", "150", "100"},
		{"clamped negative", "-5", "0"},
		{"full", "100", "100"},
		{"unparsable", "ten", "0"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			act := rules.Action{Type: rules.ActionPercentageDiscount, Value: tc.value}
			requireAmount(t, percentageDiscountAction(act, cart), tc.want)
		})
	}
}

func TestFixedDiscountAction(t *testing.T) {
	t.Parallel()

	cart := cartOf(30, 50)

	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"within subtotal", "20", "20"},
		{"capped at subtotal", "500", "80"},
		{"negative", "-5", "0"},
		{"unparsable", "lots", "0"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			act := rules.Action{Type: rules.ActionFixedDiscount, Value: tc.value}
			requireAmount(t, fixedDiscountAction(act, cart), tc.want)
		})
	}
}

func TestFreeShippingAction(t *testing.T) {
	t.Parallel()

	outcome := freeShippingAction(rules.Action{Type: rules.ActionFreeShipping}, cartOf(10))
	if !outcome.FreeShipping {
		t.Fatal("expected FreeShipping set")
	}
	requireAmount(t, outcome, "0")
}

func TestFreeItemActions(t *testing.T) {
	t.Parallel()

	// Quantities expand into units: 10, 20, 20, 30.
	cart := NewCartView(
		CartLine{ProductID: "a", UnitPrice: decimal.NewFromInt(20), Quantity: 2},
		CartLine{ProductID: "b", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
		CartLine{ProductID: "c", UnitPrice: decimal.NewFromInt(30), Quantity: 1},
	)

	requireAmount(t, cheapestFreeAction(rules.Action{}, cart), "10")
	requireAmount(t, mostExpensiveFreeAction(rules.Action{}, cart), "30")

	nth := func(actionType, position string) ActionOutcome {
		act := rules.Action{Type: actionType, Params: map[string]string{rules.ParamPosition: position}}
		if actionType == rules.ActionNthCheapestFree {
			return nthCheapestFreeAction(act, cart)
		}
		return nthExpensiveFreeAction(act, cart)
	}

	requireAmount(t, nth(rules.ActionNthCheapestFree, "2"), "20")
	requireAmount(t, nth(rules.ActionNthCheapestFree, "4"), "30")
	requireAmount(t, nth(rules.ActionNthCheapestFree, "5"), "0")
	requireAmount(t, nth(rules.ActionNthCheapestFree, "0"), "0")
	requireAmount(t, nth(rules.ActionNthCheapestFree, "second"), "0")
	requireAmount(t, nth(rules.ActionNthExpensiveFree, "2"), "20")
	requireAmount(t, nth(rules.ActionNthExpensiveFree, "4"), "10")
}

func TestFreeItemActionsSkipUnpricedUnits(t *testing.T) {
	t.Parallel()

	cart := NewCartView(
		CartLine{ProductID: "freebie", UnitPrice: decimal.Zero, Quantity: 1},
		CartLine{ProductID: "a", UnitPrice: decimal.NewFromInt(15), Quantity: 1},
	)

	requireAmount(t, cheapestFreeAction(rules.Action{}, cart), "15")
}

func TestBundleCheapestFreeAction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		prices   []float64
		minItems string
		want     string
	}{
		{"below group size", []float64{10, 20, 30}, "4", "0"},
		{"one full group", []float64{10, 20, 30, 40}, "4", "10"},
		{"two full groups", []float64{10, 20, 30, 40, 5, 50, 60, 70}, "4", "15"},
		{"remainder ignored", []float64{10, 20, 30, 40, 50}, "4", "10"},
		{"custom group size", []float64{10, 20, 30}, "3", "10"},
		{"invalid group size", []float64{10, 20, 30, 40}, "zero", "0"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			act := rules.Action{
				Type:   rules.ActionBundleCheapestFree,
				Params: map[string]string{rules.ParamMinItems: tc.minItems},
			}
			requireAmount(t, bundleCheapestFreeAction(act, cartOf(tc.prices...)), tc.want)
		})
	}
}
