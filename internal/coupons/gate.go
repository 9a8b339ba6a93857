// Package coupons enforces the promotion's coupon exclusions: configured
// codes cannot be stacked on top of an applied rule discount.
package coupons

import (
	"context"
	"strings"

	"github.com/nextorder/promo-engine/internal/engine"
	"github.com/nextorder/promo-engine/pkg/config"
	pkgerrors "github.com/nextorder/promo-engine/pkg/errors"
	"github.com/nextorder/promo-engine/pkg/logger"
)

// Gate validates coupon codes against the excluded list.
type Gate struct {
	excluded map[string]struct{}
	logg     *logger.Logger
}

// NewGate builds a gate from promotion settings. Codes are matched
// case-insensitively.
func NewGate(cfg config.PromotionConfig, logg *logger.Logger) (*Gate, error) {
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}

	excluded := make(map[string]struct{})
	for _, code := range cfg.ExcludedCouponCodes() {
		excluded[strings.ToLower(code)] = struct{}{}
	}
	return &Gate{excluded: excluded, logg: logg}, nil
}

// Excluded reports whether the code is on the exclusion list.
func (g *Gate) Excluded(code string) bool {
	_, ok := g.excluded[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// Validate rejects an excluded coupon when the current evaluation already
// granted a discount. Suppressed conflict entries do not count as granted.
// A nil error means the coupon may be applied.
func (g *Gate) Validate(ctx context.Context, code string, results []engine.DiscountResult) error {
	if !g.Excluded(code) {
		return nil
	}

	for _, result := range results {
		if result.Conflict || !result.Applied() {
			continue
		}
		g.logg.Info(ctx, "rejecting excluded coupon stacked on promotion")
		return pkgerrors.New(pkgerrors.CodeConflict, "coupon cannot be combined with the current promotion").
			WithDetails(map[string]string{"code": strings.TrimSpace(code)})
	}
	return nil
}
