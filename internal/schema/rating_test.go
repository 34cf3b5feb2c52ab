package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingDomains(t *testing.T) {
	tests := []struct {
		name     string
		list     List
		wantMin  float64
		wantMax  float64
		wantStep float64
	}{
		{
			name:     "stars",
			list:     List{RatingType: RatingStars},
			wantMin:  0.5,
			wantMax:  5,
			wantStep: 0.5,
		},
		{
			name:     "points default",
			list:     List{RatingType: RatingPoints},
			wantMin:  1,
			wantMax:  100,
			wantStep: 1,
		},
		{
			name:     "points custom max",
			list:     List{RatingType: RatingPoints, RatingConfig: &RatingConfig{Max: 20}},
			wantMin:  1,
			wantMax:  20,
			wantStep: 1,
		},
		{
			name:     "scale default",
			list:     List{RatingType: RatingScale},
			wantMin:  1,
			wantMax:  10,
			wantStep: 1,
		},
		{
			name:     "scale custom max and step",
			list:     List{RatingType: RatingScale, RatingConfig: &RatingConfig{Max: 6, Step: 2}},
			wantMin:  1,
			wantMax:  6,
			wantStep: 2,
		},
		{
			name:     "none has no domain",
			list:     List{RatingType: RatingNone},
			wantMin:  0,
			wantMax:  0,
			wantStep: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMin, RatingMin(&tt.list))
			assert.Equal(t, tt.wantMax, RatingMax(&tt.list))
			assert.Equal(t, tt.wantStep, RatingStep(&tt.list))
		})
	}
}

func TestCanonicalName_FoldsCase(t *testing.T) {
	assert.Equal(t, CanonicalName("DUNE"), CanonicalName("dune"))
	assert.Equal(t, 0, CompareNames("Straße", "STRASSE"))
}

func TestCompareNames_Ordering(t *testing.T) {
	assert.Equal(t, -1, CompareNames("alpha", "Beta"))
	assert.Equal(t, 1, CompareNames("gamma", "Beta"))
	assert.Equal(t, 0, CompareNames("Same", "same"))
}
