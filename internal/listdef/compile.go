package listdef

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/tallylists/tally/internal/schema"
)

// CompileError reports a list definition that could not be compiled.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileList parses a CUE value into a schema.List. The value should
// be the list struct itself, e.g. the result of looking up the "list"
// path in a definition document.
//
// The reserved Name field is injected here: authors never declare it,
// and a declared field with the reserved id is an error.
func CompileList(v cue.Value) (*schema.List, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	list := &schema.List{
		FieldDefinitions: []schema.FieldDefinition{{
			ID:       schema.NameFieldID,
			Name:     "Name",
			Type:     schema.FieldText,
			Required: true,
			Order:    0,
		}},
	}

	// name (required)
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{Field: "name", Message: "name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	list.Name = name

	// id (optional; the store assigns one when absent)
	if idVal := v.LookupPath(cue.ParsePath("id")); idVal.Exists() {
		id, err := idVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		list.ID = id
	}

	// rating (required: every list states its rating type, "none" included)
	ratingVal := v.LookupPath(cue.ParsePath("rating"))
	if !ratingVal.Exists() {
		return nil, &CompileError{Field: "rating", Message: "rating is required (use type: \"none\" for unrated lists)", Pos: v.Pos()}
	}
	list.RatingType, list.RatingConfig, err = parseRating(ratingVal)
	if err != nil {
		return nil, err
	}

	// fields (optional; a list can be just names and ratings)
	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if fieldsVal.Exists() {
		fields, err := parseFields(fieldsVal)
		if err != nil {
			return nil, err
		}
		list.FieldDefinitions = append(list.FieldDefinitions, fields...)
	}

	return list, nil
}

func parseRating(v cue.Value) (schema.RatingType, *schema.RatingConfig, error) {
	typVal := v.LookupPath(cue.ParsePath("type"))
	if !typVal.Exists() {
		return "", nil, &CompileError{Field: "rating.type", Message: "rating.type is required", Pos: v.Pos()}
	}
	typ, err := typVal.String()
	if err != nil {
		return "", nil, formatCUEError(err)
	}

	cfg, err := parseRatingConfig(v)
	if err != nil {
		return "", nil, err
	}
	return schema.RatingType(typ), cfg, nil
}

// parseRatingConfig reads optional max/step numbers from a rating
// struct. Returns nil when neither is present.
func parseRatingConfig(v cue.Value) (*schema.RatingConfig, error) {
	var cfg schema.RatingConfig
	found := false

	if maxVal := v.LookupPath(cue.ParsePath("max")); maxVal.Exists() {
		f, err := maxVal.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		cfg.Max = f
		found = true
	}
	if stepVal := v.LookupPath(cue.ParsePath("step")); stepVal.Exists() {
		f, err := stepVal.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		cfg.Step = f
		found = true
	}

	if !found {
		return nil, nil
	}
	return &cfg, nil
}

func parseFields(v cue.Value) ([]schema.FieldDefinition, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var fields []schema.FieldDefinition
	order := 1
	for iter.Next() {
		def, err := parseField(iter.Value(), order)
		if err != nil {
			return nil, err
		}
		fields = append(fields, def)
		order++
	}
	return fields, nil
}

func parseField(v cue.Value, order int) (schema.FieldDefinition, error) {
	def := schema.FieldDefinition{Order: order}

	for _, attr := range [...]struct {
		path string
		dst  *string
	}{
		{"id", &def.ID},
		{"name", &def.Name},
	} {
		val := v.LookupPath(cue.ParsePath(attr.path))
		if !val.Exists() {
			return def, &CompileError{Field: attr.path, Message: attr.path + " is required on every field", Pos: v.Pos()}
		}
		s, err := val.String()
		if err != nil {
			return def, formatCUEError(err)
		}
		*attr.dst = s
	}

	typVal := v.LookupPath(cue.ParsePath("type"))
	if !typVal.Exists() {
		return def, &CompileError{Field: "type", Message: fmt.Sprintf("field %q is missing a type", def.ID), Pos: v.Pos()}
	}
	typ, err := typVal.String()
	if err != nil {
		return def, formatCUEError(err)
	}
	def.Type = schema.FieldType(typ)

	if reqVal := v.LookupPath(cue.ParsePath("required")); reqVal.Exists() {
		req, err := reqVal.Bool()
		if err != nil {
			return def, formatCUEError(err)
		}
		def.Required = req
	}

	if optVal := v.LookupPath(cue.ParsePath("options")); optVal.Exists() {
		optIter, err := optVal.List()
		if err != nil {
			return def, formatCUEError(err)
		}
		for optIter.Next() {
			s, err := optIter.Value().String()
			if err != nil {
				return def, formatCUEError(err)
			}
			def.Options = append(def.Options, s)
		}
	}

	if ratingVal := v.LookupPath(cue.ParsePath("rating")); ratingVal.Exists() {
		cfg, err := parseRatingConfig(ratingVal)
		if err != nil {
			return def, err
		}
		def.RatingConfig = cfg
	}

	return def, nil
}

// formatCUEError converts a CUE error into a CompileError with position
// info when one is available.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
