package engine

import (
	"time"

	"github.com/tallylists/tally/internal/schema"
)

// Bound names which end of a rating range an edit targets.
type Bound string

const (
	BoundMin Bound = "min"
	BoundMax Bound = "max"
)

// SetRatingMode switches an active rating filter's mode. Moving into a
// bounded mode with no range yet configured seeds the full rating
// domain; moving into unrated leaves the range alone (it is ignored
// there but survives a round-trip back).
func SetRatingMode(list *schema.List, st FilterState, id string, mode RatingFilterMode) (FilterState, error) {
	return st.MutateActive(id, func(c FilterCriterion) FilterCriterion {
		c.RatingMode = mode
		if mode != RatingUnrated && c.RatingRange == nil {
			c.RatingRange = &RatingRange{Min: schema.RatingMin(list), Max: schema.RatingMax(list)}
		}
		return c
	})
}

// SetRatingBound edits one bound of an active rating filter's range.
// The edited value is clamped into the list's rating domain. In between
// mode the min<max relationship is enforced by nudging the other bound
// one step out of the way; when the other bound has no room left, the
// edited bound gives up that last step instead. Above and below modes
// enforce nothing between the bounds - only one of them is live.
func SetRatingBound(list *schema.List, st FilterState, id string, bound Bound, value float64) (FilterState, error) {
	lo, hi, step := schema.RatingMin(list), schema.RatingMax(list), schema.RatingStep(list)

	return st.MutateActive(id, func(c FilterCriterion) FilterCriterion {
		rng := RatingRange{Min: lo, Max: hi}
		if c.RatingRange != nil {
			rng = *c.RatingRange
		}

		v := clamp(value, lo, hi)
		switch bound {
		case BoundMin:
			rng.Min = v
		case BoundMax:
			rng.Max = v
		}

		if c.RatingMode == RatingBetween && rng.Min >= rng.Max {
			switch bound {
			case BoundMin:
				rng.Max = clamp(rng.Min+step, lo, hi)
				if rng.Min >= rng.Max {
					rng.Min = rng.Max - step
				}
			case BoundMax:
				rng.Min = clamp(rng.Max-step, lo, hi)
				if rng.Min >= rng.Max {
					rng.Max = rng.Min + step
				}
			}
		}

		c.RatingRange = &rng
		return c
	})
}

// SetDateRange replaces an active date filter's range. nil bounds mean
// unset; no ordering is enforced between From and To (an inverted range
// simply matches nothing, and the screens prevent it upstream).
func SetDateRange(st FilterState, id string, from, to *time.Time) (FilterState, error) {
	return st.MutateActive(id, func(c FilterCriterion) FilterCriterion {
		c.DateRange = &DateRange{From: from, To: to}
		return c
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
