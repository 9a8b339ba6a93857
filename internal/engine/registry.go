package engine

import (
	"sync"

	"github.com/nextorder/promo-engine/internal/rules"
	"github.com/shopspring/decimal"
)

// ConditionFunc decides whether a condition holds for the cart. It must be
// pure and must never fail: unparsable configuration means "not satisfied".
type ConditionFunc func(cond rules.Condition, cart *CartView) bool

// ActionOutcome is what an action calculator produces for a matching rule.
type ActionOutcome struct {
	Amount       decimal.Decimal
	FreeShipping bool
}

// ActionFunc computes the discount an action grants. Pure; unparsable
// configuration yields a zero outcome.
type ActionFunc func(act rules.Action, cart *CartView) ActionOutcome

// Conflict families. Only one positive discount survives per family; the
// shipping family is exempt because free shipping is idempotent.
const (
	FamilyPercentage = "percentage"
	FamilyFixed      = "fixed"
	FamilyFreeItem   = "free_item"
	FamilyShipping   = "shipping"
)

// Registry maps condition and action type names to their handlers. The
// built-in types are pre-registered; hosts may add their own without
// touching the engine.
type Registry struct {
	mu         sync.RWMutex
	conditions map[string]ConditionFunc
	actions    map[string]ActionFunc
	families   map[string]string
}

// NewRegistry returns a registry with every built-in type wired.
func NewRegistry() *Registry {
	r := &Registry{
		conditions: make(map[string]ConditionFunc),
		actions:    make(map[string]ActionFunc),
		families:   make(map[string]string),
	}

	r.RegisterCondition(rules.ConditionCartTotal, cartTotalCondition)
	r.RegisterCondition(rules.ConditionItemCount, itemCountCondition)
	r.RegisterCondition(rules.ConditionSpecificProduct, specificProductCondition)
	r.RegisterCondition(rules.ConditionProductCount, productCountCondition)

	r.RegisterAction(rules.ActionPercentageDiscount, FamilyPercentage, percentageDiscountAction)
	r.RegisterAction(rules.ActionFixedDiscount, FamilyFixed, fixedDiscountAction)
	r.RegisterAction(rules.ActionFreeShipping, FamilyShipping, freeShippingAction)
	r.RegisterAction(rules.ActionCheapestFree, FamilyFreeItem, cheapestFreeAction)
	r.RegisterAction(rules.ActionMostExpensiveFree, FamilyFreeItem, mostExpensiveFreeAction)
	r.RegisterAction(rules.ActionNthCheapestFree, FamilyFreeItem, nthCheapestFreeAction)
	r.RegisterAction(rules.ActionNthExpensiveFree, FamilyFreeItem, nthExpensiveFreeAction)
	r.RegisterAction(rules.ActionBundleCheapestFree, FamilyFreeItem, bundleCheapestFreeAction)

	return r
}

// RegisterCondition adds or replaces the handler for a condition type.
func (r *Registry) RegisterCondition(name string, fn ConditionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions[name] = fn
}

// RegisterAction adds or replaces the handler for an action type. family may
// be one of the Family constants, a host-defined key, or empty for actions
// that never conflict.
func (r *Registry) RegisterAction(name, family string, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
	if family != "" {
		r.families[name] = family
	} else {
		delete(r.families, name)
	}
}

func (r *Registry) condition(name string) (ConditionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.conditions[name]
	return fn, ok
}

func (r *Registry) action(name string) (ActionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.actions[name]
	return fn, ok
}

func (r *Registry) family(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.families[name]
}
