// Package schema provides the core data model for tally lists.
//
// This package contains type definitions only. All other internal packages
// import schema; schema imports nothing internal. This ensures the model
// remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Field values are a sealed union (FieldValue) - dispatch is always an
//     exhaustive type switch, never an open-ended any
//   - The reserved Name field (id "1") is structurally mandatory on every
//     List and resolves through the legacy synonym key "name"
//   - A rating of 0 is the "unset" sentinel, never a valid rating
//   - All JSON tags use snake_case
package schema
