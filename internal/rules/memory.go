package rules

import (
	"context"
	"sort"
	"sync"

	pkgerrors "github.com/nextorder/promo-engine/pkg/errors"
)

// MemoryStore keeps rules in process memory. Hosts that persist rules in
// their own storage can use it to feed the engine; tests use it for the
// write-path semantics without a database. All mutations run under one lock,
// so a save and its exclusivity deactivations are atomic.
type MemoryStore struct {
	mu      sync.Mutex
	ruleSet map[int64]Rule
	nextID  int64
}

// NewMemoryStore builds a store preloaded with the given rules. Rules
// without an id are assigned one.
func NewMemoryStore(seed ...Rule) *MemoryStore {
	store := &MemoryStore{ruleSet: make(map[int64]Rule, len(seed)), nextID: 1}
	for _, rule := range seed {
		if rule.ID == 0 {
			rule.ID = store.nextID
		}
		if rule.ID >= store.nextID {
			store.nextID = rule.ID + 1
		}
		store.ruleSet[rule.ID] = rule.Clone()
	}
	return store
}

func (s *MemoryStore) List(ctx context.Context) ([]Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(false), nil
}

func (s *MemoryStore) ListActive(ctx context.Context) ([]Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(true), nil
}

// snapshot copies matching rules ordered by priority, then id. Caller holds
// the lock.
func (s *MemoryStore) snapshot(activeOnly bool) []Rule {
	out := make([]Rule, 0, len(s.ruleSet))
	for _, rule := range s.ruleSet {
		if activeOnly && !rule.Active {
			continue
		}
		out = append(out, rule.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (*Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.ruleSet[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rule not found")
	}
	cloned := rule.Clone()
	return &cloned, nil
}

func (s *MemoryStore) Save(ctx context.Context, rule *Rule) ([]int64, error) {
	if rule == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule is required")
	}
	if rule.Category == "" {
		rule.Category = rule.Condition.Type
	}
	if err := Validate(*rule); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, other := range s.ruleSet {
		if id != rule.ID && other.Name == rule.Name {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "rule name already in use")
		}
	}

	if rule.ID == 0 {
		rule.ID = s.nextID
	}
	if rule.ID >= s.nextID {
		s.nextID = rule.ID + 1
	}

	var deactivated []int64
	if rule.Active {
		deactivated = PlanDeactivations(*rule, s.snapshot(false))
		for _, id := range deactivated {
			other := s.ruleSet[id]
			other.Active = false
			s.ruleSet[id] = other
		}
	}

	s.ruleSet[rule.ID] = rule.Clone()
	return deactivated, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ruleSet[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "rule not found")
	}
	delete(s.ruleSet, id)
	return nil
}

func (s *MemoryStore) Activate(ctx context.Context, id int64) ([]int64, error) {
	rule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rule.Active = true
	return s.Save(ctx, rule)
}

func (s *MemoryStore) Toggle(ctx context.Context, id int64) (bool, []int64, error) {
	rule, err := s.Get(ctx, id)
	if err != nil {
		return false, nil, err
	}

	if rule.Active {
		rule.Active = false
		if _, err := s.Save(ctx, rule); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	deactivated, err := s.Activate(ctx, id)
	if err != nil {
		return false, nil, err
	}
	return true, deactivated, nil
}
