package engine

import (
	"time"

	"github.com/tallylists/tally/internal/criteria"
)

// SortKey selects what a sort criterion compares.
type SortKey string

const (
	SortKeyDate   SortKey = "date"
	SortKeyRating SortKey = "rating"
	SortKeyName   SortKey = "name"
)

// Direction orders a sort criterion's comparisons.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortCriterion is one configured unit of ordering. Active criteria are
// held in priority order; index 0 wins ties last-to-first.
type SortCriterion struct {
	ID        string    `json:"id"`
	Key       SortKey   `json:"key"`
	Label     string    `json:"label"`
	Icon      string    `json:"icon"`
	Direction Direction `json:"direction"`
}

// CriterionID implements criteria.Criterion.
func (c SortCriterion) CriterionID() string { return c.ID }

// FilterType selects a filter criterion's predicate family. The
// available pool is de-duplicated per type, so the picker never offers
// the same family twice.
type FilterType string

const (
	FilterRating FilterType = "rating"
	FilterDate   FilterType = "date"
)

// RatingFilterMode selects how a rating filter reads its range.
type RatingFilterMode string

const (
	RatingAbove   RatingFilterMode = "above"
	RatingBelow   RatingFilterMode = "below"
	RatingBetween RatingFilterMode = "between"
	RatingUnrated RatingFilterMode = "unrated"
)

// RatingRange bounds a rating filter. Which bound is live depends on the
// mode: above reads Min, below reads Max, between reads both inclusive.
type RatingRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DateRange bounds a date filter. nil means the bound is unset. From is
// an instant boundary; To is widened to the end of its calendar day so a
// same-day range still matches entries created that afternoon.
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// FilterCriterion is one configured unit of predicate logic. The
// type-specific configuration rides along: RatingMode/RatingRange for
// rating filters, DateRange for date filters.
type FilterCriterion struct {
	ID    string     `json:"id"`
	Type  FilterType `json:"type"`
	Label string     `json:"label"`
	Icon  string     `json:"icon"`

	RatingMode  RatingFilterMode `json:"rating_mode,omitempty"`
	RatingRange *RatingRange     `json:"rating_range,omitempty"`
	DateRange   *DateRange       `json:"date_range,omitempty"`
}

// CriterionID implements criteria.Criterion.
func (c FilterCriterion) CriterionID() string { return c.ID }

// SortState and FilterState are one session's criteria pools. Plain
// serializable values; a screen holds one of each and passes them back
// into the engine on every interaction.
type (
	SortState   = criteria.Pools[SortCriterion]
	FilterState = criteria.Pools[FilterCriterion]
)
