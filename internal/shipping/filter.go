// Package shipping adjusts the shippable rate list after a discount
// evaluation: free-shipping rates disappear when a promotion already cut the
// order total, unless a rule explicitly granted free shipping.
package shipping

import (
	"context"

	"github.com/nextorder/promo-engine/internal/engine"
	"github.com/nextorder/promo-engine/pkg/config"
	pkgerrors "github.com/nextorder/promo-engine/pkg/errors"
	"github.com/nextorder/promo-engine/pkg/logger"
	"github.com/shopspring/decimal"
)

// MethodFreeShipping identifies zero-cost rate methods.
const MethodFreeShipping = "free_shipping"

// Rate is one shipping option offered at checkout.
type Rate struct {
	ID     string
	Method string
	Label  string
	Cost   decimal.Decimal
}

// Filter decides which rates survive a discount evaluation.
type Filter struct {
	disableFreeShipping bool
	logg                *logger.Logger
}

// NewFilter builds a filter from promotion settings.
func NewFilter(cfg config.PromotionConfig, logg *logger.Logger) (*Filter, error) {
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Filter{disableFreeShipping: cfg.DisableFreeShipping, logg: logg}, nil
}

// GrantsFreeShipping reports whether any applied result grants free
// shipping. Suppressed conflict entries never grant anything.
func GrantsFreeShipping(results []engine.DiscountResult) bool {
	for _, result := range results {
		if !result.Conflict && result.FreeShipping {
			return true
		}
	}
	return false
}

// Apply filters the offered rates. When a monetary discount applied and the
// promotion disables free shipping, free-shipping rates are removed; a rule
// that itself granted free shipping keeps them. The input slice is not
// modified.
func (f *Filter) Apply(ctx context.Context, rates []Rate, results []engine.DiscountResult) []Rate {
	if !f.disableFreeShipping || GrantsFreeShipping(results) {
		return append([]Rate(nil), rates...)
	}

	discounted := false
	for _, result := range results {
		if !result.Conflict && result.Amount.IsPositive() {
			discounted = true
			break
		}
	}
	if !discounted {
		return append([]Rate(nil), rates...)
	}

	kept := make([]Rate, 0, len(rates))
	for _, rate := range rates {
		if rate.Method == MethodFreeShipping {
			continue
		}
		kept = append(kept, rate)
	}
	if len(kept) < len(rates) {
		f.logg.Debug(ctx, "removed free shipping rates for discounted order")
	}
	return kept
}
