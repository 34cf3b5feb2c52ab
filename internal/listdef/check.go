package listdef

import (
	"fmt"
	"strings"

	"github.com/tallylists/tally/internal/schema"
)

// Definition error codes (D100-D199)
const (
	ErrReservedNameField = "D100" // reserved Name field malformed or redeclared
	ErrUnknownRatingType = "D101" // rating type not in the closed set
	ErrUnknownFieldType  = "D102" // field type not in the closed set
	ErrDuplicateFieldID  = "D103" // two fields share an id
	ErrDuplicateOrder    = "D104" // two fields share an order
	ErrEmptyFieldName    = "D105" // field display name is empty
	ErrOptionsMissing    = "D106" // dropdown/multi-select without options
	ErrOptionsForbidden  = "D107" // options on a field type that has none
	ErrBadRatingConfig   = "D108" // max/step not positive, or step > max
	ErrDuplicateOption   = "D109" // an options list repeats a value
)

// DefError reports one structural problem with a list definition.
type DefError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e DefError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Check validates a compiled list against the schema rules. Returns all
// errors found (does not fail-fast) so an author sees every problem in
// one pass.
func Check(list *schema.List) []DefError {
	var errs []DefError

	errs = append(errs, checkReservedField(list)...)

	if !schema.ValidRatingTypes[list.RatingType] {
		errs = append(errs, DefError{
			Field:   "rating.type",
			Message: fmt.Sprintf("unknown rating type %q", list.RatingType),
			Code:    ErrUnknownRatingType,
		})
	}
	errs = append(errs, checkRatingConfig("rating", list.RatingConfig)...)

	ids := make(map[string]bool)
	orders := make(map[int]bool)
	for i := range list.FieldDefinitions {
		def := &list.FieldDefinitions[i]
		field := fmt.Sprintf("fields[%d]", i)

		if ids[def.ID] {
			errs = append(errs, DefError{
				Field:   field + ".id",
				Message: fmt.Sprintf("duplicate field id %q", def.ID),
				Code:    ErrDuplicateFieldID,
			})
		}
		ids[def.ID] = true

		if orders[def.Order] {
			errs = append(errs, DefError{
				Field:   field + ".order",
				Message: fmt.Sprintf("duplicate order %d", def.Order),
				Code:    ErrDuplicateOrder,
			})
		}
		orders[def.Order] = true

		if strings.TrimSpace(def.Name) == "" {
			errs = append(errs, DefError{
				Field:   field + ".name",
				Message: "field name must be non-empty",
				Code:    ErrEmptyFieldName,
			})
		}

		errs = append(errs, checkFieldType(field, def)...)
	}

	return errs
}

// checkReservedField verifies the List invariant: exactly one field with
// the reserved id, text, required, order 0.
func checkReservedField(list *schema.List) []DefError {
	def := list.NameField()
	if def == nil {
		return []DefError{{
			Field:   "fields",
			Message: "reserved Name field (id \"1\") is missing",
			Code:    ErrReservedNameField,
		}}
	}

	var errs []DefError
	if def.Type != schema.FieldText || !def.Required || def.Order != 0 {
		errs = append(errs, DefError{
			Field:   "fields",
			Message: "reserved Name field must be text, required, order 0",
			Code:    ErrReservedNameField,
		})
	}

	count := 0
	for i := range list.FieldDefinitions {
		if list.FieldDefinitions[i].ID == schema.NameFieldID {
			count++
		}
	}
	if count > 1 {
		errs = append(errs, DefError{
			Field:   "fields",
			Message: "reserved Name field declared more than once",
			Code:    ErrReservedNameField,
		})
	}
	return errs
}

func checkFieldType(field string, def *schema.FieldDefinition) []DefError {
	var errs []DefError

	if !schema.ValidFieldTypes[def.Type] {
		return []DefError{{
			Field:   field + ".type",
			Message: fmt.Sprintf("unknown field type %q", def.Type),
			Code:    ErrUnknownFieldType,
		}}
	}

	hasOptions := def.Type == schema.FieldDropdown || def.Type == schema.FieldMultiSelect
	switch {
	case hasOptions && len(def.Options) == 0:
		errs = append(errs, DefError{
			Field:   field + ".options",
			Message: fmt.Sprintf("%s fields need at least one option", def.Type),
			Code:    ErrOptionsMissing,
		})
	case !hasOptions && len(def.Options) > 0:
		errs = append(errs, DefError{
			Field:   field + ".options",
			Message: fmt.Sprintf("%s fields do not take options", def.Type),
			Code:    ErrOptionsForbidden,
		})
	}

	if hasOptions {
		seen := make(map[string]bool, len(def.Options))
		for _, opt := range def.Options {
			if seen[opt] {
				errs = append(errs, DefError{
					Field:   field + ".options",
					Message: fmt.Sprintf("option %q repeated", opt),
					Code:    ErrDuplicateOption,
				})
			}
			seen[opt] = true
		}
	}

	if def.Type == schema.FieldRating {
		errs = append(errs, checkRatingConfig(field+".rating", def.RatingConfig)...)
	}

	return errs
}

func checkRatingConfig(field string, cfg *schema.RatingConfig) []DefError {
	if cfg == nil {
		return nil
	}

	var errs []DefError
	if cfg.Max < 0 || cfg.Step < 0 {
		errs = append(errs, DefError{
			Field:   field,
			Message: "max and step must be positive",
			Code:    ErrBadRatingConfig,
		})
	}
	if cfg.Max > 0 && cfg.Step > cfg.Max {
		errs = append(errs, DefError{
			Field:   field,
			Message: fmt.Sprintf("step %g exceeds max %g", cfg.Step, cfg.Max),
			Code:    ErrBadRatingConfig,
		})
	}
	return errs
}
