// Package engine evaluates promotion rules against a cart snapshot and
// computes the resulting discounts. Evaluation is a pure, request-scoped
// pass: the engine holds no mutable state between calls and may be shared
// across goroutines.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nextorder/promo-engine/internal/rules"
	pkgerrors "github.com/nextorder/promo-engine/pkg/errors"
	"github.com/nextorder/promo-engine/pkg/logger"
	"github.com/nextorder/promo-engine/pkg/money"
)

// Params configures a new Engine.
type Params struct {
	Logger *logger.Logger
	// Registry defaults to the built-in types when nil.
	Registry *Registry
}

// Engine orchestrates one evaluation pass: active-rule selection, category
// restriction, condition matching, action calculation, and conflict
// resolution.
type Engine struct {
	registry *Registry
	logg     *logger.Logger
}

// New builds an engine backed by the provided stack.
func New(params Params) (*Engine, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	return &Engine{registry: registry, logg: params.Logger}, nil
}

// Registry exposes the type registry so hosts can add extension types.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Calculate evaluates the rule snapshot against the cart and returns the
// discounts to apply. Entries with Conflict set are suppressed candidates
// kept for diagnostics; their amount is always zero.
//
// A malformed or misconfigured rule contributes nothing and never aborts
// the pass. The only hard error is a missing cart.
func (e *Engine) Calculate(ctx context.Context, cart *CartView, ruleSet []rules.Rule) ([]DiscountResult, error) {
	if cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart view is required")
	}

	ctx = e.logg.WithEvaluationID(ctx, uuid.NewString())

	active := make([]rules.Rule, 0, len(ruleSet))
	for _, rule := range ruleSet {
		if rule.Active {
			active = append(active, rule)
		}
	}
	if len(active) == 0 {
		e.logg.Debug(ctx, "no active rules for discount calculation")
		return nil, nil
	}

	working := e.restrictToActiveCategory(ctx, rules.SortedByPriority(active))

	candidates := e.evaluate(ctx, cart, working)
	resolved := resolveConflicts(e.registry, candidates)

	final := make([]DiscountResult, 0, len(resolved))
	for _, result := range resolved {
		if !result.Applied() && !result.Conflict {
			continue
		}
		// Rounding happens here and nowhere earlier.
		result.Amount = money.Round(result.Amount)
		final = append(final, result)
	}
	return final, nil
}

// restrictToActiveCategory narrows the working set to the category of the
// first active rule (in priority order) that has one. More than one active
// category violates the write-path invariant; the engine does not repair
// the store, it reports the inconsistency and trusts the first category.
func (e *Engine) restrictToActiveCategory(ctx context.Context, sorted []rules.Rule) []rules.Rule {
	activeCategory := ""
	for _, rule := range sorted {
		if rule.Category != "" {
			activeCategory = rule.Category
			break
		}
	}
	if activeCategory == "" {
		return sorted
	}

	for _, rule := range sorted {
		if rule.Category != "" && rule.Category != activeCategory {
			warnCtx := e.logg.WithCategory(ctx, activeCategory)
			e.logg.Warn(warnCtx, "multiple active rule categories detected; using first by priority")
			break
		}
	}

	restricted := make([]rules.Rule, 0, len(sorted))
	for _, rule := range sorted {
		if rule.Category == activeCategory {
			restricted = append(restricted, rule)
		}
	}
	return restricted
}

func (e *Engine) evaluate(ctx context.Context, cart *CartView, working []rules.Rule) []DiscountResult {
	var candidates []DiscountResult
	for _, rule := range working {
		ruleCtx := e.logg.WithRuleID(ctx, rule.ID)

		if !rule.WellFormed() {
			e.logg.Debug(ruleCtx, "skipping rule with missing condition or action type")
			continue
		}

		condition, ok := e.registry.condition(rule.Condition.Type)
		if !ok {
			e.logg.Debug(ruleCtx, "unknown condition type; treating as not met")
			continue
		}
		if !condition(rule.Condition, cart) {
			continue
		}

		outcome := ActionOutcome{}
		if action, ok := e.registry.action(rule.Action.Type); ok {
			outcome = action(rule.Action, cart)
		} else {
			e.logg.Debug(ruleCtx, "unknown action type; no discount contributed")
		}
		if outcome.Amount.IsNegative() {
			outcome.Amount = decimal.Zero
		}

		result := DiscountResult{
			RuleID:       rule.ID,
			RuleName:     rule.Name,
			Category:     rule.Category,
			ActionType:   rule.Action.Type,
			Amount:       outcome.Amount,
			FreeShipping: outcome.FreeShipping,
			Exclusive:    rule.Action.Exclusive,
		}
		candidates = append(candidates, result)

		if rule.Action.Exclusive && result.Applied() {
			e.logg.Debug(ruleCtx, "exclusive rule applied; halting evaluation")
			break
		}
	}
	return candidates
}
