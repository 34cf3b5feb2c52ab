// Package validate checks candidate entries against a list's schema.
//
// Validation is pure and collect-all: every rule is evaluated and every
// failure reported, so the caller can annotate each offending field
// rather than stopping at the first problem. Failures carry machine
// reason codes, never formatted messages - message text belongs to the
// rendering layer.
//
// Two failure categories are kept strictly apart, mirroring the rest of
// the codebase: user-correctable problems come back inside Result;
// contract violations (unknown field type, a value shape the schema
// forbids outright) come back as an error and mean a caller bug.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/tallylists/tally/internal/schema"
)

// Validation reason codes. Stable identifiers for callers and tests;
// never shown to users directly.
const (
	// ReasonEmptyName - the resolved display name is empty after trimming.
	ReasonEmptyName = "empty-name"

	// ReasonMissingRating - the list requires a rating and the candidate
	// has none (nil or the 0 sentinel).
	ReasonMissingRating = "missing-rating"

	// ReasonRatingOutOfRange - the rating falls outside the list's
	// rating domain.
	ReasonRatingOutOfRange = "rating-out-of-range"

	// ReasonRatingPrecision - the rating has more precision than the
	// policy allows.
	ReasonRatingPrecision = "rating-precision"

	// ReasonMissingRequired - a required custom field has no usable value.
	ReasonMissingRequired = "missing-required"

	// ReasonEmptyMultiSelect - a required multi-select has no selections.
	ReasonEmptyMultiSelect = "empty-multiselect"

	// ReasonUnansweredYesNo - a required yes-no was never answered.
	ReasonUnansweredYesNo = "unanswered-yesno"
)

// RatingFieldID is the pseudo field id used for rating failures. Ratings
// live beside fieldValues rather than in them, but failures still need
// an addressable slot for the UI to annotate.
const RatingFieldID = "rating"

// Precision selects how much numeric precision a points/scale rating may
// carry. The original entry screens disagreed with each other here, so
// the choice is explicit configuration, not a constant.
type Precision int

const (
	// PrecisionAny accepts any float value within bounds.
	PrecisionAny Precision = iota
	// PrecisionOneDecimal accepts at most one decimal digit.
	PrecisionOneDecimal
	// PrecisionInteger accepts whole numbers only.
	PrecisionInteger
)

// Policy carries the validation knobs that differ between call sites.
type Policy struct {
	// StarsMin is the lowest valid stars rating. Half a star in most
	// screens, a full star in some.
	StarsMin float64

	// RatingPrecision applies to points and scale ratings.
	RatingPrecision Precision
}

// DefaultPolicy matches the most common call-site behavior: half-star
// minimum, no extra precision enforcement.
var DefaultPolicy = Policy{StarsMin: schema.StarsMin, RatingPrecision: PrecisionAny}

// Candidate is the mutable part of an entry under validation: the rating
// and the field values. Identity and timestamps are irrelevant here.
type Candidate struct {
	Rating      *float64
	FieldValues schema.FieldValues
}

// Failure identifies one failed rule on one field.
type Failure struct {
	FieldID string `json:"field_id"`
	Reason  string `json:"reason"`
}

// Result is the outcome of validating one candidate.
type Result struct {
	Valid    bool      `json:"valid"`
	Failures []Failure `json:"failures"`
}

// Validate checks a candidate entry against the list schema and policy.
// All rules run; the result itemizes every failure. A non-nil error
// means a contract violation (unknown field type in the schema, or a
// value whose shape the schema categorically forbids), not invalid user
// input.
func Validate(list *schema.List, c Candidate, pol Policy) (Result, error) {
	if list == nil {
		return Result{}, fmt.Errorf("validate: list is nil")
	}

	var failures []Failure

	// Rule 1: name non-empty. Applies unconditionally - the Name field
	// is structurally mandatory on every list.
	if !schema.HasName(c.FieldValues) {
		failures = append(failures, Failure{FieldID: schema.NameFieldID, Reason: ReasonEmptyName})
	}

	// Rule 2: rating requiredness. 0 is the "unset" sentinel, never a
	// valid rating of zero.
	rated := c.Rating != nil && *c.Rating != 0
	if list.RatingType != schema.RatingNone && !rated {
		failures = append(failures, Failure{FieldID: RatingFieldID, Reason: ReasonMissingRating})
	}

	// Rule 3: rating bounds, only when a rating is present.
	if rated {
		failures = append(failures, checkRatingDomain(list, *c.Rating, pol)...)
	}

	// Rule 4: required custom fields.
	for i := range list.FieldDefinitions {
		def := &list.FieldDefinitions[i]
		if def.ID == schema.NameFieldID || !def.Required {
			continue
		}
		f, err := checkRequired(def, c.FieldValues[def.ID])
		if err != nil {
			return Result{}, err
		}
		failures = append(failures, f...)
	}

	return Result{Valid: len(failures) == 0, Failures: failures}, nil
}

// checkRatingDomain verifies a present rating against the list's rating
// domain and the policy's precision rule.
func checkRatingDomain(list *schema.List, rating float64, pol Policy) []Failure {
	var failures []Failure

	switch list.RatingType {
	case schema.RatingStars:
		min := pol.StarsMin
		if min == 0 {
			min = schema.StarsMin
		}
		if rating < min || rating > schema.StarsMax {
			failures = append(failures, Failure{FieldID: RatingFieldID, Reason: ReasonRatingOutOfRange})
		}

	case schema.RatingPoints, schema.RatingScale:
		if rating < schema.RatingMin(list) || rating > schema.RatingMax(list) {
			failures = append(failures, Failure{FieldID: RatingFieldID, Reason: ReasonRatingOutOfRange})
		}
		if !allowedPrecision(rating, pol.RatingPrecision) {
			failures = append(failures, Failure{FieldID: RatingFieldID, Reason: ReasonRatingPrecision})
		}

	case schema.RatingNone:
		// No domain; an unsolicited rating is simply ignored.
	}

	return failures
}

func allowedPrecision(rating float64, p Precision) bool {
	switch p {
	case PrecisionAny:
		return true
	case PrecisionOneDecimal:
		scaled := rating * 10
		return scaled == math.Trunc(scaled)
	case PrecisionInteger:
		return rating == math.Trunc(rating)
	default:
		return true
	}
}

// checkRequired verifies one required custom field. The rule is
// type-dependent; dispatch is an exhaustive switch over the closed
// FieldType set, and an unknown type fails fast.
func checkRequired(def *schema.FieldDefinition, value schema.FieldValue) ([]Failure, error) {
	switch def.Type {
	case schema.FieldYesNo:
		// false is an answer; only nil/null means unanswered.
		switch value.(type) {
		case nil, schema.NullValue:
			return []Failure{{FieldID: def.ID, Reason: ReasonUnansweredYesNo}}, nil
		case schema.BoolValue:
			return nil, nil
		default:
			return nil, fmt.Errorf("validate: field %q (yes-no) holds %T, want bool or null", def.ID, value)
		}

	case schema.FieldMultiSelect:
		switch v := value.(type) {
		case nil, schema.NullValue:
			return []Failure{{FieldID: def.ID, Reason: ReasonEmptyMultiSelect}}, nil
		case schema.ListValue:
			if len(v) == 0 {
				return []Failure{{FieldID: def.ID, Reason: ReasonEmptyMultiSelect}}, nil
			}
			return nil, nil
		default:
			// The multi-select invariant says array or nothing; a scalar
			// here is upstream corruption, not user input.
			return nil, fmt.Errorf("validate: field %q (multi-select) holds %T, want array", def.ID, value)
		}

	case schema.FieldText, schema.FieldNumber, schema.FieldDate,
		schema.FieldDropdown, schema.FieldRating, schema.FieldPhotos:
		return checkRequiredScalar(def, value), nil

	default:
		return nil, fmt.Errorf("validate: unknown field type %q on field %q", def.Type, def.ID)
	}
}

// checkRequiredScalar applies the generic rule: non-null, non-absent,
// and non-empty after converting to string and trimming. Photos satisfy
// it with a non-empty URI list.
func checkRequiredScalar(def *schema.FieldDefinition, value schema.FieldValue) []Failure {
	missing := Failure{FieldID: def.ID, Reason: ReasonMissingRequired}

	switch v := value.(type) {
	case nil, schema.NullValue:
		return []Failure{missing}
	case schema.ListValue:
		if len(v) == 0 {
			return []Failure{missing}
		}
		return nil
	default:
		s, ok := schema.AsString(value)
		if !ok || strings.TrimSpace(s) == "" {
			return []Failure{missing}
		}
		return nil
	}
}
