// Package store provides durable storage for lists and entries.
//
// It is the reference implementation of the schema.ListSource and
// schema.EntrySource collaborators the engine consumes; nothing in the
// core packages depends on it. Uses SQLite with WAL mode for concurrent
// read access.
//
// Entry writes are gated: CreateEntry and UpdateEntry run the candidate
// through validate.Validate and refuse to persist an invalid entry,
// returning the itemized failures inside a *RejectedError. Persisting
// around the gate is not possible through this API.
package store
