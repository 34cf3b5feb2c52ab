package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveName_CanonicalKey(t *testing.T) {
	fv := FieldValues{"1": TextValue("Dune")}
	assert.Equal(t, "Dune", ResolveName(fv))
}

func TestResolveName_LegacySynonymKey(t *testing.T) {
	fv := FieldValues{"name": TextValue("Hyperion")}
	assert.Equal(t, "Hyperion", ResolveName(fv))
}

func TestResolveName_CanonicalKeyWins(t *testing.T) {
	fv := FieldValues{
		"1":    TextValue("Dune"),
		"name": TextValue("Stale"),
	}
	assert.Equal(t, "Dune", ResolveName(fv))
}

func TestResolveName_NonTextValue(t *testing.T) {
	fv := FieldValues{"1": NumberValue(7)}
	assert.Equal(t, "", ResolveName(fv))
}

func TestHasName(t *testing.T) {
	tests := []struct {
		name string
		fv   FieldValues
		want bool
	}{
		{"present", FieldValues{"1": TextValue("Dune")}, true},
		{"whitespace only", FieldValues{"1": TextValue("   ")}, false},
		{"empty string", FieldValues{"1": TextValue("")}, false},
		{"absent", FieldValues{}, false},
		{"legacy key", FieldValues{"name": TextValue("x")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasName(tt.fv))
		})
	}
}

func TestEntry_Rated(t *testing.T) {
	rating := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		rating *float64
		want   bool
	}{
		{"nil is unrated", nil, false},
		{"zero sentinel is unrated", rating(0), false},
		{"half star counts", rating(0.5), true},
		{"full rating counts", rating(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{Rating: tt.rating}
			assert.Equal(t, tt.want, e.Rated())
		})
	}
}

func TestEntry_RatingValue_Sentinel(t *testing.T) {
	unrated := Entry{}
	assert.Equal(t, -1.0, unrated.RatingValue(-1))

	v := 3.5
	rated := Entry{Rating: &v}
	assert.Equal(t, 3.5, rated.RatingValue(-1))
}
