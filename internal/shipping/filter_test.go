package shipping

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nextorder/promo-engine/internal/engine"
	"github.com/nextorder/promo-engine/pkg/config"
	"github.com/nextorder/promo-engine/pkg/logger"
)

func newTestFilter(t *testing.T, disable bool) *Filter {
	t.Helper()
	filter, err := NewFilter(
		config.PromotionConfig{DisableFreeShipping: disable},
		logger.New(logger.Options{ServiceName: "shipping-test", Output: io.Discard}),
	)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	return filter
}

func testRates() []Rate {
	return []Rate{
		{ID: "flat", Method: "flat_rate", Label: "Flat Rate", Cost: decimal.NewFromInt(5)},
		{ID: "free", Method: MethodFreeShipping, Label: "Free Shipping", Cost: decimal.Zero},
	}
}

func discountedResults() []engine.DiscountResult {
	return []engine.DiscountResult{{RuleID: 1, Amount: decimal.NewFromInt(10)}}
}

func TestNewFilterRequiresLogger(t *testing.T) {
	t.Parallel()

	if _, err := NewFilter(config.PromotionConfig{}, nil); err == nil {
		t.Fatal("expected error for missing logger")
	}
}

func TestApplyRemovesFreeShippingWhenDiscounted(t *testing.T) {
	t.Parallel()

	filter := newTestFilter(t, true)
	kept := filter.Apply(context.Background(), testRates(), discountedResults())

	if len(kept) != 1 || kept[0].Method != "flat_rate" {
		t.Fatalf("kept = %v, want only flat_rate", kept)
	}
}

func TestApplyKeepsRatesWithoutDiscount(t *testing.T) {
	t.Parallel()

	filter := newTestFilter(t, true)
	kept := filter.Apply(context.Background(), testRates(), nil)
	if len(kept) != 2 {
		t.Fatalf("kept = %v, want all rates", kept)
	}

	suppressed := []engine.DiscountResult{{RuleID: 1, Conflict: true}}
	kept = filter.Apply(context.Background(), testRates(), suppressed)
	if len(kept) != 2 {
		t.Fatalf("kept = %v, want all rates for suppressed results", kept)
	}
}

func TestApplyHonorsFreeShippingGrant(t *testing.T) {
	t.Parallel()

	filter := newTestFilter(t, true)
	results := []engine.DiscountResult{
		{RuleID: 1, Amount: decimal.NewFromInt(10)},
		{RuleID: 2, FreeShipping: true},
	}

	kept := filter.Apply(context.Background(), testRates(), results)
	if len(kept) != 2 {
		t.Fatalf("kept = %v, want all rates when free shipping is granted", kept)
	}
}

func TestApplyDisabledSetting(t *testing.T) {
	t.Parallel()

	filter := newTestFilter(t, false)
	kept := filter.Apply(context.Background(), testRates(), discountedResults())
	if len(kept) != 2 {
		t.Fatalf("kept = %v, want all rates when setting is off", kept)
	}
}

func TestGrantsFreeShipping(t *testing.T) {
	t.Parallel()

	if GrantsFreeShipping(nil) {
		t.Fatal("no results should not grant free shipping")
	}
	if GrantsFreeShipping([]engine.DiscountResult{{FreeShipping: true, Conflict: true}}) {
		t.Fatal("suppressed result should not grant free shipping")
	}
	if !GrantsFreeShipping([]engine.DiscountResult{{FreeShipping: true}}) {
		t.Fatal("expected grant")
	}
}
