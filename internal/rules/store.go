package rules

import "context"

// Store is the persistence surface the discount engine reads its rule
// snapshots from. Implementations must make Save/Activate/Toggle atomic with
// respect to the category-exclusivity deactivations they trigger.
type Store interface {
	// List returns every rule ordered by priority, then id.
	List(ctx context.Context) ([]Rule, error)
	// ListActive returns the active subset in the same order. The slice is a
	// consistent snapshot for the duration of one evaluation.
	ListActive(ctx context.Context) ([]Rule, error)
	Get(ctx context.Context, id int64) (*Rule, error)
	// Save validates and persists the rule, defaulting an empty category to
	// the condition type. Rule names are unique across the store. When the
	// rule is active it also deactivates every
	// conflicting rule in the same write; the deactivated ids are returned.
	Save(ctx context.Context, rule *Rule) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	// Activate switches the rule on, applying the exclusivity plan.
	Activate(ctx context.Context, id int64) ([]int64, error)
	// Toggle flips the active flag. Activation goes through Activate; plain
	// deactivation touches no other rule. Returns the new state.
	Toggle(ctx context.Context, id int64) (bool, []int64, error)
}
