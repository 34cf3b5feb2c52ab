package schema

import (
	"strings"
	"time"
)

// Entry is one record belonging to a list. Rating is a pointer because
// "unrated" is a real state, distinct from any numeric rating; a stored
// value of 0 is also treated as unset (legacy records encode unrated
// that way).
type Entry struct {
	ID          string      `json:"id"`
	ListID      string      `json:"list_id"`
	Rating      *float64    `json:"rating"`
	FieldValues FieldValues `json:"field_values"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Rated reports whether the entry carries a real rating. nil and the 0
// sentinel both mean unrated.
func (e *Entry) Rated() bool {
	return e.Rating != nil && *e.Rating != 0
}

// RatingValue returns the entry's rating, or the given sentinel when the
// entry is unrated.
func (e *Entry) RatingValue(sentinel float64) float64 {
	if !e.Rated() {
		return sentinel
	}
	return *e.Rating
}

// Name resolves the entry's display name from the reserved Name field,
// trying the canonical id "1" first and the legacy "name" key second.
// Returns "" when neither key holds a text value.
func (e *Entry) Name() string {
	return ResolveName(e.FieldValues)
}

// ResolveName resolves the display name from a raw field-value map.
// Both the canonical NameFieldID key and the legacy NameFieldKey synonym
// appear in practice and must yield the same logical value.
func ResolveName(fv FieldValues) string {
	for _, key := range [2]string{NameFieldID, NameFieldKey} {
		if v, ok := fv[key]; ok {
			if s, ok := v.(TextValue); ok {
				return string(s)
			}
		}
	}
	return ""
}

// HasName reports whether the resolved name is non-empty after trimming.
func HasName(fv FieldValues) bool {
	return strings.TrimSpace(ResolveName(fv)) != ""
}
