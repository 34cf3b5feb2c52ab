package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallylists/tally/internal/schema"
)

func activeRatingFilter(t *testing.T, list *schema.List) (FilterState, string) {
	t.Helper()
	st := DefaultFilterState(list)
	id := ""
	for _, c := range st.Available {
		if c.Type == FilterRating {
			id = c.ID
		}
	}
	require.NotEmpty(t, id)
	next, err := ActivateFilter(list, st, id, now)
	require.NoError(t, err)
	return next, id
}

func TestSetRatingBound_ClampsIntoDomain(t *testing.T) {
	list := stars()
	st, id := activeRatingFilter(t, list)

	st, err := SetRatingBound(list, st, id, BoundMax, 99)
	require.NoError(t, err)
	c, _ := st.ActiveByID(id)
	assert.Equal(t, 5.0, c.RatingRange.Max)

	st, err = SetRatingBound(list, st, id, BoundMin, -2)
	require.NoError(t, err)
	c, _ = st.ActiveByID(id)
	assert.Equal(t, 0.5, c.RatingRange.Min)
}

func TestSetRatingBound_BetweenNudgesConflict(t *testing.T) {
	list := stars()
	st, id := activeRatingFilter(t, list)

	// Pull the range to [3, 5], then push min up to 5: max has no room,
	// so min gives back one step.
	st, err := SetRatingBound(list, st, id, BoundMin, 3)
	require.NoError(t, err)
	st, err = SetRatingBound(list, st, id, BoundMin, 5)
	require.NoError(t, err)

	c, _ := st.ActiveByID(id)
	assert.Equal(t, 4.5, c.RatingRange.Min)
	assert.Equal(t, 5.0, c.RatingRange.Max)
	assert.Less(t, c.RatingRange.Min, c.RatingRange.Max)
}

func TestSetRatingBound_BetweenNudgesOtherBoundWhenRoom(t *testing.T) {
	list := stars()
	st, id := activeRatingFilter(t, list)

	st, err := SetRatingBound(list, st, id, BoundMax, 5)
	require.NoError(t, err)
	st, err = SetRatingBound(list, st, id, BoundMin, 3)
	require.NoError(t, err)

	// Edit max down below min: min steps out of the way.
	st, err = SetRatingBound(list, st, id, BoundMax, 2)
	require.NoError(t, err)

	c, _ := st.ActiveByID(id)
	assert.Equal(t, 2.0, c.RatingRange.Max)
	assert.Equal(t, 1.5, c.RatingRange.Min)
}

func TestSetRatingBound_AboveModeAllowsAnyRelationship(t *testing.T) {
	list := stars()
	st, id := activeRatingFilter(t, list)

	st, err := SetRatingMode(list, st, id, RatingAbove)
	require.NoError(t, err)
	st, err = SetRatingBound(list, st, id, BoundMin, 5)
	require.NoError(t, err)

	// Only Min is live in above mode; no min<max enforcement happens.
	c, _ := st.ActiveByID(id)
	assert.Equal(t, 5.0, c.RatingRange.Min)
}

func TestSetRatingMode_SeedsRangeWhenMissing(t *testing.T) {
	list := stars()
	st := FilterState{Active: []FilterCriterion{{ID: "f1", Type: FilterRating, RatingMode: RatingUnrated}}}

	st, err := SetRatingMode(list, st, "f1", RatingBetween)
	require.NoError(t, err)

	c, _ := st.ActiveByID("f1")
	require.NotNil(t, c.RatingRange)
	assert.Equal(t, 0.5, c.RatingRange.Min)
	assert.Equal(t, 5.0, c.RatingRange.Max)
}

func TestSetDateRange(t *testing.T) {
	list := stars()
	st := DefaultFilterState(list)
	var dateID string
	for _, c := range st.Available {
		if c.Type == FilterDate {
			dateID = c.ID
		}
	}
	st, err := ActivateFilter(list, st, dateID, now)
	require.NoError(t, err)

	from := now.Add(-48 * time.Hour)
	st, err = SetDateRange(st, dateID, &from, nil)
	require.NoError(t, err)

	c, _ := st.ActiveByID(dateID)
	require.NotNil(t, c.DateRange)
	assert.Equal(t, from, *c.DateRange.From)
	assert.Nil(t, c.DateRange.To)
}

func TestMutations_RejectInactiveCriterion(t *testing.T) {
	list := stars()
	st := DefaultFilterState(list)
	ratingID := st.Available[0].ID

	_, err := SetRatingBound(list, st, ratingID, BoundMin, 2)
	require.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, clamp(0.1, 0.5, 5))
	assert.Equal(t, 5.0, clamp(9, 0.5, 5))
	assert.Equal(t, 3.0, clamp(3, 0.5, 5))
}
