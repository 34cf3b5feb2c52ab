// Package criteria implements the two-pool state machine shared by sort
// and filter criteria.
//
// A Pools value splits a fixed universe of criteria between an Active
// pool (order-significant: sort priority, or the members of a filter
// AND-set) and an Available pool (inactive, order-irrelevant). Every
// operation preserves the membership invariant: each criterion id lives
// in exactly one pool.
//
// Operations are value-in/value-out. A Pools is plain serializable
// state: callers hold it per viewing session, pass it to the engine, and
// keep whatever the operation returns. Nothing in this package owns or
// caches state, so independent sessions over the same list never
// interfere.
//
// Invariant violations (activating an id that is not available,
// reordering with a mismatched id set) are programming errors surfaced
// as *ContractError, never silently coerced.
package criteria
