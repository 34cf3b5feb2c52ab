package criteria

import (
	"fmt"
	"slices"
)

// Criterion is the identity constraint for pool members. Concrete
// criterion types live in the engine package; this package only needs a
// stable id.
type Criterion interface {
	CriterionID() string
}

// Pools holds one session's criteria split between the two pools.
// Active order is significant (index 0 = highest sort priority); the
// Available pool is a plain unordered set kept in a slice for
// deterministic serialization.
type Pools[T Criterion] struct {
	Active    []T `json:"active"`
	Available []T `json:"available"`
}

// NewPools builds a Pools from initial members, verifying that no id
// appears twice across both pools.
func NewPools[T Criterion](active, available []T) (Pools[T], error) {
	p := Pools[T]{Active: slices.Clone(active), Available: slices.Clone(available)}
	if err := p.Check(); err != nil {
		return Pools[T]{}, err
	}
	return p, nil
}

// Check verifies the membership invariant: every id appears exactly once
// across the two pools.
func (p Pools[T]) Check() error {
	seen := make(map[string]bool, len(p.Active)+len(p.Available))
	for _, c := range p.Active {
		if seen[c.CriterionID()] {
			return &ContractError{Code: ErrCodeDuplicateID, ID: c.CriterionID(), Message: "criterion id appears twice"}
		}
		seen[c.CriterionID()] = true
	}
	for _, c := range p.Available {
		if seen[c.CriterionID()] {
			return &ContractError{Code: ErrCodeDuplicateID, ID: c.CriterionID(), Message: "criterion id appears twice"}
		}
		seen[c.CriterionID()] = true
	}
	return nil
}

// Activate moves the criterion with the given id from Available to the
// end of Active (lowest priority / newest member of the AND-set).
func (p Pools[T]) Activate(id string) (Pools[T], error) {
	idx := indexOf(p.Available, id)
	if idx < 0 {
		return p, &ContractError{Code: ErrCodeNotAvailable, ID: id, Message: "criterion is not in the available pool"}
	}

	moved := p.Available[idx]
	next := Pools[T]{
		Active:    append(slices.Clone(p.Active), moved),
		Available: slices.Delete(slices.Clone(p.Available), idx, idx+1),
	}
	return next, nil
}

// Deactivate moves the criterion with the given id from Active back to
// Available. The replace hook, when non-nil, decides what (if anything)
// returns to the available pool in its place: it receives the removed
// criterion and the current available pool, and returns the criterion to
// append plus ok=false to append nothing. Filter sessions use this for
// type-level de-duplication; sort sessions pass nil and get the removed
// criterion back verbatim.
func (p Pools[T]) Deactivate(id string, replace func(removed T, available []T) (T, bool)) (Pools[T], error) {
	idx := indexOf(p.Active, id)
	if idx < 0 {
		return p, &ContractError{Code: ErrCodeNotActive, ID: id, Message: "criterion is not in the active pool"}
	}

	removed := p.Active[idx]
	next := Pools[T]{
		Active:    slices.Delete(slices.Clone(p.Active), idx, idx+1),
		Available: slices.Clone(p.Available),
	}

	if replace == nil {
		next.Available = append(next.Available, removed)
		return next, nil
	}
	if repl, ok := replace(removed, next.Available); ok {
		next.Available = append(next.Available, repl)
	}
	return next, nil
}

// Reorder replaces the active pool's order with the given id sequence.
// The id set must be an exact permutation of the current active pool:
// no additions, no omissions, no duplicates. Available is untouched.
func (p Pools[T]) Reorder(ids []string) (Pools[T], error) {
	if len(ids) != len(p.Active) {
		return p, &ContractError{
			Code:    ErrCodeMembershipMismatch,
			Message: fmt.Sprintf("reorder has %d ids, active pool has %d", len(ids), len(p.Active)),
		}
	}

	byID := make(map[string]T, len(p.Active))
	for _, c := range p.Active {
		byID[c.CriterionID()] = c
	}

	next := Pools[T]{
		Active:    make([]T, 0, len(ids)),
		Available: slices.Clone(p.Available),
	}
	used := make(map[string]bool, len(ids))
	for _, id := range ids {
		if used[id] {
			return p, &ContractError{Code: ErrCodeDuplicateID, ID: id, Message: "reorder repeats an id"}
		}
		c, ok := byID[id]
		if !ok {
			return p, &ContractError{Code: ErrCodeMembershipMismatch, ID: id, Message: "reorder names an id outside the active pool"}
		}
		used[id] = true
		next.Active = append(next.Active, c)
	}
	return next, nil
}

// MutateActive applies an in-place configuration update to one active
// criterion without changing pool membership. The mutate function must
// not change the criterion's id; a changed id is a contract violation.
func (p Pools[T]) MutateActive(id string, mutate func(T) T) (Pools[T], error) {
	idx := indexOf(p.Active, id)
	if idx < 0 {
		return p, &ContractError{Code: ErrCodeNotActive, ID: id, Message: "criterion is not in the active pool"}
	}

	updated := mutate(p.Active[idx])
	if updated.CriterionID() != id {
		return p, &ContractError{Code: ErrCodeMembershipMismatch, ID: id, Message: "mutate changed the criterion id"}
	}

	next := Pools[T]{Active: slices.Clone(p.Active), Available: slices.Clone(p.Available)}
	next.Active[idx] = updated
	return next, nil
}

// ActiveByID returns the active criterion with the given id.
func (p Pools[T]) ActiveByID(id string) (T, bool) {
	var zero T
	idx := indexOf(p.Active, id)
	if idx < 0 {
		return zero, false
	}
	return p.Active[idx], true
}

// ActiveIDs returns the ids of the active pool in priority order.
func (p Pools[T]) ActiveIDs() []string {
	ids := make([]string, len(p.Active))
	for i, c := range p.Active {
		ids[i] = c.CriterionID()
	}
	return ids
}

func indexOf[T Criterion](pool []T, id string) int {
	for i, c := range pool {
		if c.CriterionID() == id {
			return i
		}
	}
	return -1
}
