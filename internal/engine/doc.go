// Package engine evaluates sort and filter criteria over list entries.
//
// The engine is entirely synchronous and pure: Sort, Filter, and Apply
// are functions of (list, entries, criteria state) with no hidden state,
// no I/O, and no clocks of their own. Entries are treated as an
// immutable snapshot - sorting copies, never mutates - so a caller may
// hold the same slice across several concurrent views and memoize
// results keyed on inputs alone.
//
// Criteria live in explicit session state (SortState, FilterState)
// built on the criteria package's two-pool discipline. The engine owns
// the lifecycle rules layered on top of the raw pools: freshly
// activated filters are seeded with schema-derived defaults, deactivated
// filters are de-duplicated by type on their way back to the available
// pool, and range edits are clamped into the list's rating domain.
//
// Determinism rules:
//   - Sorting is stable. Entries tying on every active criterion keep
//     their input order; tie-break-by-insertion-order is a contract.
//   - Unrated entries compare through the sentinel -1, below every real
//     rating. Direction flips the comparison sign, not the sentinel.
//   - Filtering preserves relative order and never reorders survivors.
package engine
