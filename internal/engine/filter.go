package engine

import (
	"fmt"
	"time"

	"github.com/tallylists/tally/internal/schema"
)

// Filter returns the subsequence of entries satisfying every active
// criterion. Relative order is preserved, so filtering composes with
// Sort in either direction. Zero active criteria passes everything.
func Filter(entries []schema.Entry, active []FilterCriterion) []schema.Entry {
	if len(active) == 0 {
		out := make([]schema.Entry, len(entries))
		copy(out, entries)
		return out
	}

	out := make([]schema.Entry, 0, len(entries))
	for i := range entries {
		if matchesAll(&entries[i], active) {
			out = append(out, entries[i])
		}
	}
	return out
}

// Apply composes the full pipeline: sort by the active sort criteria,
// then filter by the active filter criteria. Both orders are valid
// (filtering is order-preserving); this one matches how the screens
// compose them.
func Apply(entries []schema.Entry, sortState SortState, filterState FilterState) []schema.Entry {
	return Filter(Sort(entries, sortState.Active), filterState.Active)
}

func matchesAll(e *schema.Entry, active []FilterCriterion) bool {
	for _, c := range active {
		if !matches(e, c) {
			return false
		}
	}
	return true
}

func matches(e *schema.Entry, c FilterCriterion) bool {
	switch c.Type {
	case FilterRating:
		return matchesRating(e, c)
	case FilterDate:
		return matchesDate(e, c.DateRange)
	default:
		panic(fmt.Sprintf("engine: unknown filter type %q", c.Type))
	}
}

func matchesRating(e *schema.Entry, c FilterCriterion) bool {
	if c.RatingMode == RatingUnrated {
		// Range is ignored in this mode.
		return !e.Rated()
	}
	if !e.Rated() {
		return false
	}
	r := *e.Rating

	rng := c.RatingRange
	if rng == nil {
		// A bounded mode with no range configured matches nothing
		// rateable; the mutation API always seeds a range before the
		// criterion can reach evaluation through the normal lifecycle.
		return false
	}

	switch c.RatingMode {
	case RatingAbove:
		return r > rng.Min
	case RatingBelow:
		return r < rng.Max
	case RatingBetween:
		return rng.Min <= r && r <= rng.Max
	default:
		panic(fmt.Sprintf("engine: unknown rating filter mode %q", c.RatingMode))
	}
}

// matchesDate checks the entry's creation time against the range. From
// is taken as-is; To widens to end-of-day, the documented fix for
// same-day ranges excluding entries created later that day.
func matchesDate(e *schema.Entry, rng *DateRange) bool {
	if rng == nil {
		return true
	}
	if rng.From != nil && e.CreatedAt.Before(*rng.From) {
		return false
	}
	if rng.To != nil && e.CreatedAt.After(endOfDay(*rng.To)) {
		return false
	}
	return true
}

// endOfDay returns the last instant of t's calendar day in t's location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
