package rules

import (
	"reflect"
	"testing"
)

func TestPlanDeactivations(t *testing.T) {
	t.Parallel()

	all := []Rule{
		{ID: 1, Category: ConditionCartTotal, Active: true},
		{ID: 2, Category: ConditionCartTotal, Active: true},
		{ID: 3, Category: ConditionItemCount, Active: true},
		{ID: 4, Category: ConditionItemCount, Active: false},
		{ID: 5, Active: true},
	}

	activated := Rule{ID: 1, Category: ConditionCartTotal, Active: true}
	got := PlanDeactivations(activated, all)

	// Same-category rule 2 stays; active rules of other categories go,
	// including the uncategorized rule 5. Inactive rules are untouched.
	want := []int64{3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PlanDeactivations = %v, want %v", got, want)
	}
}

func TestPlanDeactivationsFallsBackToConditionType(t *testing.T) {
	t.Parallel()

	all := []Rule{
		{ID: 1, Category: ConditionItemCount, Active: true},
		{ID: 2, Category: ConditionCartTotal, Active: true},
	}

	activated := Rule{ID: 3, Condition: Condition{Type: ConditionItemCount}, Active: true}
	got := PlanDeactivations(activated, all)
	want := []int64{2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PlanDeactivations = %v, want %v", got, want)
	}
}

func TestPlanDeactivationsNoCategory(t *testing.T) {
	t.Parallel()

	all := []Rule{{ID: 1, Category: ConditionCartTotal, Active: true}}
	if got := PlanDeactivations(Rule{ID: 2}, all); got != nil {
		t.Fatalf("PlanDeactivations = %v, want nil", got)
	}
}

func TestPlanDeactivationsSkipsSelf(t *testing.T) {
	t.Parallel()

	all := []Rule{{ID: 7, Category: ConditionItemCount, Active: true}}
	activated := Rule{ID: 7, Category: ConditionCartTotal, Active: true}
	if got := PlanDeactivations(activated, all); got != nil {
		t.Fatalf("PlanDeactivations = %v, want nil", got)
	}
}
