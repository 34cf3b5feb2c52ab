package store

import (
	"encoding/json"
	"fmt"

	"github.com/tallylists/tally/internal/schema"
)

// marshalFieldValues converts a field-value map to JSON TEXT for
// storage. schema.FieldValues marshals with sorted keys, so the stored
// text is deterministic for a given map.
func marshalFieldValues(fv schema.FieldValues) (string, error) {
	data, err := json.Marshal(fv)
	if err != nil {
		return "", fmt.Errorf("marshal field values: %w", err)
	}
	return string(data), nil
}

func unmarshalFieldValues(text string) (schema.FieldValues, error) {
	var fv schema.FieldValues
	if err := json.Unmarshal([]byte(text), &fv); err != nil {
		return nil, fmt.Errorf("unmarshal field values: %w", err)
	}
	return fv, nil
}

// marshalFieldDefinitions converts a list's definitions to JSON TEXT.
// Definitions travel with the list as one document; individual fields
// are never addressed in SQL.
func marshalFieldDefinitions(defs []schema.FieldDefinition) (string, error) {
	data, err := json.Marshal(defs)
	if err != nil {
		return "", fmt.Errorf("marshal field definitions: %w", err)
	}
	return string(data), nil
}

func unmarshalFieldDefinitions(text string) ([]schema.FieldDefinition, error) {
	var defs []schema.FieldDefinition
	if err := json.Unmarshal([]byte(text), &defs); err != nil {
		return nil, fmt.Errorf("unmarshal field definitions: %w", err)
	}
	return defs, nil
}

func marshalRatingConfig(cfg *schema.RatingConfig) (*string, error) {
	if cfg == nil {
		return nil, nil
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal rating config: %w", err)
	}
	s := string(data)
	return &s, nil
}

func unmarshalRatingConfig(text *string) (*schema.RatingConfig, error) {
	if text == nil {
		return nil, nil
	}
	var cfg schema.RatingConfig
	if err := json.Unmarshal([]byte(*text), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal rating config: %w", err)
	}
	return &cfg, nil
}
