// Package testutil provides builders for lists and entries used across
// package tests.
package testutil

import (
	"time"

	"github.com/tallylists/tally/internal/schema"
)

// BaseTime anchors deterministic entry timestamps in tests.
var BaseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// StarsList builds a stars-rated list with the reserved Name field plus
// the given custom fields.
func StarsList(fields ...schema.FieldDefinition) *schema.List {
	return NewList(schema.RatingStars, fields...)
}

// NewList builds a list with the reserved Name field plus the given
// custom fields. Orders are assigned by position when unset.
func NewList(rating schema.RatingType, fields ...schema.FieldDefinition) *schema.List {
	defs := []schema.FieldDefinition{{
		ID:       schema.NameFieldID,
		Name:     "Name",
		Type:     schema.FieldText,
		Required: true,
		Order:    0,
	}}
	for i, f := range fields {
		if f.Order == 0 {
			f.Order = i + 1
		}
		defs = append(defs, f)
	}
	return &schema.List{
		ID:               "test-list",
		Name:             "Test List",
		RatingType:       rating,
		FieldDefinitions: defs,
	}
}

// EntryOption mutates an entry under construction.
type EntryOption func(*schema.Entry)

// WithRating sets the entry's rating.
func WithRating(v float64) EntryOption {
	return func(e *schema.Entry) { e.Rating = &v }
}

// WithValue sets one field value.
func WithValue(fieldID string, v schema.FieldValue) EntryOption {
	return func(e *schema.Entry) { e.FieldValues[fieldID] = v }
}

// WithCreatedAt sets the creation timestamp.
func WithCreatedAt(t time.Time) EntryOption {
	return func(e *schema.Entry) {
		e.CreatedAt = t
		e.UpdatedAt = t
	}
}

// Entry builds an unrated entry with the given display name at BaseTime.
func Entry(id, name string, opts ...EntryOption) schema.Entry {
	e := schema.Entry{
		ID:          id,
		ListID:      "test-list",
		FieldValues: schema.FieldValues{schema.NameFieldID: schema.TextValue(name)},
		CreatedAt:   BaseTime,
		UpdatedAt:   BaseTime,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
