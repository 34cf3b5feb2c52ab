package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/tallylists/tally/internal/schema"
)

// Well-known sort criterion ids. Sort criteria are a fixed set of three,
// one per key, so their ids are stable across sessions.
const (
	SortIDDate   = "sort-date"
	SortIDRating = "sort-rating"
	SortIDName   = "sort-name"
)

// DefaultDateWindow is the trailing window seeded onto a freshly
// activated date filter.
const DefaultDateWindow = 30 * 24 * time.Hour

// DefaultSortState seeds a new viewing session: newest-first date sort
// active, rating and name waiting in the available pool.
func DefaultSortState() SortState {
	return SortState{
		Active: []SortCriterion{
			{ID: SortIDDate, Key: SortKeyDate, Label: "Date Added", Icon: "calendar", Direction: Descending},
		},
		Available: []SortCriterion{
			{ID: SortIDRating, Key: SortKeyRating, Label: "Rating", Icon: "star", Direction: Descending},
			{ID: SortIDName, Key: SortKeyName, Label: "Name", Icon: "textformat", Direction: Ascending},
		},
	}
}

// DefaultFilterState seeds a new viewing session: no active filters, one
// available criterion per filter type. Lists without a rating domain get
// no rating filter to pick.
func DefaultFilterState(list *schema.List) FilterState {
	st := FilterState{
		Available: []FilterCriterion{newAvailableFilter(FilterDate)},
	}
	if list.RatingType != schema.RatingNone {
		st.Available = append([]FilterCriterion{newAvailableFilter(FilterRating)}, st.Available...)
	}
	return st
}

// newAvailableFilter synthesizes an unconfigured criterion for the
// available pool. Configuration arrives at activation time, derived from
// the list schema.
func newAvailableFilter(typ FilterType) FilterCriterion {
	c := FilterCriterion{ID: uuid.NewString(), Type: typ}
	switch typ {
	case FilterRating:
		c.Label, c.Icon = "Rating", "star"
	case FilterDate:
		c.Label, c.Icon = "Date Range", "calendar"
	}
	return c
}

// ActivateSort moves a sort criterion into the active pool at lowest
// priority.
func ActivateSort(st SortState, id string) (SortState, error) {
	return st.Activate(id)
}

// DeactivateSort returns a sort criterion to the available pool. Sort
// criteria are a fixed set, so the criterion goes back verbatim.
func DeactivateSort(st SortState, id string) (SortState, error) {
	return st.Deactivate(id, nil)
}

// ReorderSort replaces the active priority order. The id set must be an
// exact permutation of the current active pool.
func ReorderSort(st SortState, ids []string) (SortState, error) {
	return st.Reorder(ids)
}

// ToggleSortDirection flips one active criterion's direction.
func ToggleSortDirection(st SortState, id string) (SortState, error) {
	return st.MutateActive(id, func(c SortCriterion) SortCriterion {
		c.Direction = c.Direction.Toggle()
		return c
	})
}

// ActivateFilter moves a filter criterion into the active AND-set and
// seeds it with schema-derived defaults: the full rating domain for
// rating filters, a trailing 30-day window for date filters. Defaults
// are a function of the list and the supplied now alone, so a session
// can be reproduced without external state.
func ActivateFilter(list *schema.List, st FilterState, id string, now time.Time) (FilterState, error) {
	next, err := st.Activate(id)
	if err != nil {
		return st, err
	}
	return next.MutateActive(id, func(c FilterCriterion) FilterCriterion {
		return seedDefaults(list, c, now)
	})
}

// DeactivateFilter removes a filter from the AND-set. The available pool
// gets a freshly synthesized criterion of the same type - unless one is
// already waiting there, in which case nothing is added (repeated
// activate/deactivate cycles must not pile up duplicate picker rows).
func DeactivateFilter(st FilterState, id string) (FilterState, error) {
	return st.Deactivate(id, func(removed FilterCriterion, available []FilterCriterion) (FilterCriterion, bool) {
		for _, a := range available {
			if a.Type == removed.Type {
				return FilterCriterion{}, false
			}
		}
		return newAvailableFilter(removed.Type), true
	})
}

func seedDefaults(list *schema.List, c FilterCriterion, now time.Time) FilterCriterion {
	switch c.Type {
	case FilterRating:
		c.RatingMode = RatingBetween
		c.RatingRange = &RatingRange{Min: schema.RatingMin(list), Max: schema.RatingMax(list)}
	case FilterDate:
		from := now.Add(-DefaultDateWindow)
		to := now
		c.DateRange = &DateRange{From: &from, To: &to}
	}
	return c
}
