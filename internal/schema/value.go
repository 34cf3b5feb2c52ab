package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// FieldValue is a sealed interface over the runtime shapes an entry field
// value can take. Only NullValue, TextValue, NumberValue, BoolValue, and
// ListValue implement it. Which shape is legal for a given field is
// decided by the owning FieldDefinition's type, not by this union: text,
// dropdown and date fields carry TextValue; number and rating fields
// carry NumberValue; yes-no carries BoolValue or NullValue; multi-select
// and photos carry ListValue.
type FieldValue interface {
	fieldValue() // Sealed - only these types implement it
}

// NullValue represents an explicit null (an answered-with-nothing value,
// distinct from an absent key).
type NullValue struct{}

func (NullValue) fieldValue() {}

// MarshalJSON implements json.Marshaler for NullValue.
func (NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// TextValue represents a string value.
type TextValue string

func (TextValue) fieldValue() {}

// NumberValue represents a numeric value. Ratings use fractional steps
// (stars go in halves) so this is float64, unlike ids which stay strings.
type NumberValue float64

func (NumberValue) fieldValue() {}

// BoolValue represents a yes-no answer.
type BoolValue bool

func (BoolValue) fieldValue() {}

// ListValue represents a multi-select or photos value. Elements are
// always strings (option names, photo URIs).
type ListValue []string

func (ListValue) fieldValue() {}

// FieldValues maps field ids to values. Keys are FieldDefinition ids,
// plus the legacy NameFieldKey synonym for the Name field.
type FieldValues map[string]FieldValue

// UnmarshalJSON implements json.Unmarshaler for FieldValues with strict
// shape validation: values must be string, number, bool, null, or an
// array of strings. Anything else (nested objects, mixed arrays) is a
// malformed record, not something to coerce.
func (fv *FieldValues) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*fv = make(FieldValues, len(raw))
	for k, v := range raw {
		val, err := unmarshalFieldValue(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		(*fv)[k] = val
	}
	return nil
}

// MarshalJSON implements json.Marshaler for FieldValues with sorted keys
// for deterministic output.
func (fv FieldValues) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(fv))
	for k := range fv {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalFieldValue(fv[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for field %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalFieldValue marshals a FieldValue to JSON bytes using type-switch
// dispatch over the sealed union.
func MarshalFieldValue(v FieldValue) ([]byte, error) {
	switch val := v.(type) {
	case NullValue:
		return []byte("null"), nil
	case TextValue:
		return json.Marshal(string(val))
	case NumberValue:
		return json.Marshal(float64(val))
	case BoolValue:
		return json.Marshal(bool(val))
	case ListValue:
		return json.Marshal([]string(val))
	default:
		return nil, fmt.Errorf("unknown FieldValue type: %T", v)
	}
}

// unmarshalFieldValue decodes one JSON value into the appropriate union
// member. The first byte is enough to pick the shape; numbers go through
// json.Number so malformed input is caught rather than truncated.
func unmarshalFieldValue(data []byte) (FieldValue, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return TextValue(s), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return BoolValue(b), nil

	case 'n':
		// null becomes NullValue (not nil) to satisfy the sealed interface
		return NullValue{}, nil

	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("array values must contain only strings: %w", err)
		}
		return ListValue(items), nil

	case '{':
		return nil, fmt.Errorf("object values are not allowed in field values")

	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return nil, fmt.Errorf("number out of float64 range: %s", n)
		}
		return NumberValue(f), nil
	}
}

// AsString converts a scalar FieldValue to its string rendering, for the
// "non-empty after converting to string" requiredness rule. List and
// null values report ok=false.
func AsString(v FieldValue) (string, bool) {
	switch val := v.(type) {
	case TextValue:
		return string(val), true
	case NumberValue:
		return strconv.FormatFloat(float64(val), 'f', -1, 64), true
	case BoolValue:
		return strconv.FormatBool(bool(val)), true
	case NullValue, ListValue:
		return "", false
	default:
		return "", false
	}
}
