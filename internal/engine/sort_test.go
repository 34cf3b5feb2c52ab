package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallylists/tally/internal/schema"
)

func entry(id, name string, rating *float64, created time.Time) schema.Entry {
	return schema.Entry{
		ID:          id,
		ListID:      "l1",
		Rating:      rating,
		FieldValues: schema.FieldValues{schema.NameFieldID: schema.TextValue(name)},
		CreatedAt:   created,
	}
}

func rate(v float64) *float64 { return &v }

func ids(entries []schema.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSort_EmptyCriteria_PreservesOrder(t *testing.T) {
	entries := []schema.Entry{
		entry("a", "Alpha", rate(1), t0),
		entry("b", "Beta", rate(5), t0.Add(time.Hour)),
	}

	got := Sort(entries, nil)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	entries := []schema.Entry{
		entry("b", "Beta", rate(5), t0.Add(time.Hour)),
		entry("a", "Alpha", rate(1), t0),
	}

	_ = Sort(entries, []SortCriterion{{ID: SortIDDate, Key: SortKeyDate, Direction: Ascending}})
	assert.Equal(t, []string{"b", "a"}, ids(entries), "caller's slice must keep its order")
}

func TestSort_DateKey(t *testing.T) {
	entries := []schema.Entry{
		entry("mid", "M", nil, t0.Add(time.Hour)),
		entry("old", "O", nil, t0),
		entry("new", "N", nil, t0.Add(2*time.Hour)),
	}

	asc := Sort(entries, []SortCriterion{{ID: SortIDDate, Key: SortKeyDate, Direction: Ascending}})
	assert.Equal(t, []string{"old", "mid", "new"}, ids(asc))

	desc := Sort(entries, []SortCriterion{{ID: SortIDDate, Key: SortKeyDate, Direction: Descending}})
	assert.Equal(t, []string{"new", "mid", "old"}, ids(desc))
}

// Ratings [null, 5, 3] under rating desc must come out [5, 3, null].
func TestSort_RatingDesc_EndToEnd(t *testing.T) {
	entries := []schema.Entry{
		entry("unrated", "U", nil, t0),
		entry("five", "F", rate(5), t0),
		entry("three", "T", rate(3), t0),
	}

	got := Sort(entries, []SortCriterion{{ID: SortIDRating, Key: SortKeyRating, Direction: Descending}})
	assert.Equal(t, []string{"five", "three", "unrated"}, ids(got))
}

func TestSort_UnratedAlwaysBelowRated(t *testing.T) {
	entries := []schema.Entry{
		entry("unrated", "U", nil, t0),
		entry("zero-sentinel", "Z", rate(0), t0),
		entry("half", "H", rate(0.5), t0),
	}

	desc := Sort(entries, []SortCriterion{{ID: SortIDRating, Key: SortKeyRating, Direction: Descending}})
	assert.Equal(t, "half", desc[0].ID, "lowest real rating still beats unrated under desc")

	asc := Sort(entries, []SortCriterion{{ID: SortIDRating, Key: SortKeyRating, Direction: Ascending}})
	assert.Equal(t, "half", asc[2].ID, "under asc the unrated entries surface first")
}

func TestSort_NameKey_CaseInsensitive(t *testing.T) {
	entries := []schema.Entry{
		entry("c", "cherry", nil, t0),
		entry("a", "Apple", nil, t0),
		entry("b", "BANANA", nil, t0),
	}

	got := Sort(entries, []SortCriterion{{ID: SortIDName, Key: SortKeyName, Direction: Ascending}})
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestSort_NameKey_UnicodeFold(t *testing.T) {
	// Keys are folded once per entry before sorting; ß and SS must land
	// on the same key so only the suffix decides.
	entries := []schema.Entry{
		entry("b", "STRASSE B", nil, t0),
		entry("a", "straße a", nil, t0),
	}

	got := Sort(entries, []SortCriterion{{ID: SortIDName, Key: SortKeyName, Direction: Ascending}})
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestSort_Stability_TiesKeepInputOrder(t *testing.T) {
	tied := []schema.Entry{
		entry("first", "Same", rate(3), t0),
		entry("second", "same", rate(3), t0),
		entry("third", "SAME", rate(3), t0),
	}
	active := []SortCriterion{
		{ID: SortIDRating, Key: SortKeyRating, Direction: Descending},
		{ID: SortIDName, Key: SortKeyName, Direction: Ascending},
		{ID: SortIDDate, Key: SortKeyDate, Direction: Ascending},
	}

	// Every permutation of an all-tied input must come back unchanged.
	perms := [][]schema.Entry{
		{tied[0], tied[1], tied[2]},
		{tied[2], tied[0], tied[1]},
		{tied[1], tied[2], tied[0]},
	}
	for _, p := range perms {
		got := Sort(p, active)
		assert.Equal(t, ids(p), ids(got))
	}
}

func TestSort_MultiKeyPriority(t *testing.T) {
	entries := []schema.Entry{
		entry("b-high", "Beta", rate(5), t0),
		entry("a-low", "Alpha", rate(2), t0),
		entry("a-high", "Alpha", rate(5), t0),
	}
	active := []SortCriterion{
		{ID: SortIDRating, Key: SortKeyRating, Direction: Descending},
		{ID: SortIDName, Key: SortKeyName, Direction: Ascending},
	}

	got := Sort(entries, active)
	assert.Equal(t, []string{"a-high", "b-high", "a-low"}, ids(got))
}

func TestSort_UnknownKeyPanics(t *testing.T) {
	entries := []schema.Entry{
		entry("a", "A", nil, t0),
		entry("b", "B", nil, t0),
	}
	require.Panics(t, func() {
		Sort(entries, []SortCriterion{{ID: "x", Key: "shoe-size", Direction: Ascending}})
	})
}
