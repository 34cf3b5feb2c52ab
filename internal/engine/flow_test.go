package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallylists/tally/internal/schema"
	"github.com/tallylists/tally/internal/testutil"
)

// Walks one whole session: default states, activating and tuning
// criteria, applying them, then unwinding. The intermediate states are
// plain values, so every step can assert on the previous step's output
// without the engine holding anything.
func TestSessionFlow(t *testing.T) {
	list := testutil.StarsList(schema.FieldDefinition{
		ID: "author", Name: "Author", Type: schema.FieldText, Required: true,
	})

	entries := []schema.Entry{
		testutil.Entry("e1", "Solaris",
			testutil.WithRating(4.5),
			testutil.WithValue("author", schema.TextValue("Lem"))),
		testutil.Entry("e2", "Ubik",
			testutil.WithRating(3),
			testutil.WithCreatedAt(testutil.BaseTime.Add(24*time.Hour))),
		testutil.Entry("e3", "Draft",
			testutil.WithCreatedAt(testutil.BaseTime.Add(48*time.Hour))),
		testutil.Entry("e4", "Blindsight",
			testutil.WithRating(5),
			testutil.WithCreatedAt(testutil.BaseTime.Add(-24*time.Hour))),
	}

	sortState := DefaultSortState()
	filterState := DefaultFilterState(list)

	// Newest first, nothing filtered.
	got := Apply(entries, sortState, filterState)
	assert.Equal(t, []string{"e3", "e2", "e1", "e4"}, ids(got))

	// Switch to rating order; unrated sinks to the bottom.
	sortState, err := DeactivateSort(sortState, SortIDDate)
	require.NoError(t, err)
	sortState, err = ActivateSort(sortState, SortIDRating)
	require.NoError(t, err)

	got = Apply(entries, sortState, filterState)
	assert.Equal(t, []string{"e4", "e1", "e2", "e3"}, ids(got))

	// Activate the rating filter and narrow it to 4 and up.
	ratingID := filterState.Available[0].ID
	filterState, err = ActivateFilter(list, filterState, ratingID, testutil.BaseTime)
	require.NoError(t, err)
	filterState, err = SetRatingBound(list, filterState, ratingID, BoundMin, 4)
	require.NoError(t, err)

	got = Apply(entries, sortState, filterState)
	assert.Equal(t, []string{"e4", "e1"}, ids(got))

	// Flip direction without touching membership.
	sortState, err = ToggleSortDirection(sortState, SortIDRating)
	require.NoError(t, err)

	got = Apply(entries, sortState, filterState)
	assert.Equal(t, []string{"e1", "e4"}, ids(got))

	// Deactivate the filter; everything comes back.
	filterState, err = DeactivateFilter(filterState, ratingID)
	require.NoError(t, err)
	require.NoError(t, filterState.Check())

	got = Apply(entries, sortState, filterState)
	assert.Len(t, got, 4)
}

// An unrated-lists session never sees a rating filter at all.
func TestSessionFlow_UnratedList(t *testing.T) {
	list := testutil.NewList(schema.RatingNone)

	filterState := DefaultFilterState(list)
	require.Len(t, filterState.Available, 1)
	assert.Equal(t, FilterDate, filterState.Available[0].Type)
}
