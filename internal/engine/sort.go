package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tallylists/tally/internal/schema"
)

// unratedSentinel stands in for a missing rating during comparison.
// Below every real rating (the stars domain bottoms out at 0.5, points
// and scale at 1), so unrated entries land after rated ones under desc
// and before them under asc. The sentinel itself never flips: direction
// negates the comparison sign, not the policy.
const unratedSentinel = -1

// sortRow pairs an entry with its precomputed name key so the
// comparator never re-folds a name. Folding is the expensive part of a
// name comparison and a stable sort revisits each entry O(log n) times.
type sortRow struct {
	entry   schema.Entry
	nameKey string
}

// Sort returns the entries ordered by the active criteria, highest
// priority first. The input slice is never mutated; ties on every
// criterion keep their input order (stable sort is a contract here, not
// a nicety - callers lean on insertion order as the final tie-break).
func Sort(entries []schema.Entry, active []SortCriterion) []schema.Entry {
	out := make([]schema.Entry, len(entries))
	copy(out, entries)

	if len(active) == 0 {
		return out
	}

	rows := make([]sortRow, len(out))
	for i, e := range out {
		rows[i] = sortRow{entry: e}
	}
	if usesNameKey(active) {
		for i := range rows {
			rows[i].nameKey = schema.CanonicalName(rows[i].entry.Name())
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return compareRows(&rows[i], &rows[j], active) < 0
	})

	for i, r := range rows {
		out[i] = r.entry
	}
	return out
}

func usesNameKey(active []SortCriterion) bool {
	for _, c := range active {
		if c.Key == SortKeyName {
			return true
		}
	}
	return false
}

// compareRows walks the criteria in priority order; the first non-zero
// comparison decides.
func compareRows(a, b *sortRow, active []SortCriterion) int {
	for _, c := range active {
		cmp := compareByKey(a, b, c.Key)
		if c.Direction == Descending {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp
		}
	}
	return 0
}

func compareByKey(a, b *sortRow, key SortKey) int {
	switch key {
	case SortKeyDate:
		return a.entry.CreatedAt.Compare(b.entry.CreatedAt)

	case SortKeyRating:
		ra, rb := a.entry.RatingValue(unratedSentinel), b.entry.RatingValue(unratedSentinel)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		default:
			return 0
		}

	case SortKeyName:
		return strings.Compare(a.nameKey, b.nameKey)

	default:
		// SortKey is a closed set; an unknown key means a corrupted
		// criterion, which no amount of user input can produce.
		panic(fmt.Sprintf("engine: unknown sort key %q", key))
	}
}
