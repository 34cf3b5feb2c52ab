package schema

import "context"

// RatingType determines the rating domain for every entry in a list.
type RatingType string

const (
	RatingStars  RatingType = "stars"
	RatingPoints RatingType = "points"
	RatingScale  RatingType = "scale"
	RatingNone   RatingType = "none"
)

// ValidRatingTypes defines allowed rating types.
var ValidRatingTypes = map[RatingType]bool{
	RatingStars:  true,
	RatingPoints: true,
	RatingScale:  true,
	RatingNone:   true,
}

// FieldType enumerates the kinds of custom fields a list schema may carry.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldDate        FieldType = "date"
	FieldDropdown    FieldType = "dropdown"
	FieldMultiSelect FieldType = "multi-select"
	FieldYesNo       FieldType = "yes-no"
	FieldRating      FieldType = "rating"
	FieldPhotos      FieldType = "photos"
)

// ValidFieldTypes defines allowed field types.
var ValidFieldTypes = map[FieldType]bool{
	FieldText:        true,
	FieldNumber:      true,
	FieldDate:        true,
	FieldDropdown:    true,
	FieldMultiSelect: true,
	FieldYesNo:       true,
	FieldRating:      true,
	FieldPhotos:      true,
}

// NameFieldID is the reserved field id of the mandatory Name field.
// Every list has exactly one field with this id: type text, required,
// order 0. It is created with the list and can never be removed.
const NameFieldID = "1"

// NameFieldKey is the legacy synonym key for the Name field. Older entry
// records keyed the display name under "name" instead of "1"; both keys
// must resolve to the same logical value.
const NameFieldKey = "name"

// RatingConfig customizes the numeric domain of a points/scale rating or
// of a rating-typed custom field.
type RatingConfig struct {
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// FieldDefinition defines one custom field's schema within a list.
// Options is populated only for dropdown and multi-select fields;
// RatingConfig only for rating fields.
type FieldDefinition struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Type         FieldType     `json:"type"`
	Required     bool          `json:"required"`
	Order        int           `json:"order"`
	Options      []string      `json:"options,omitempty"`
	RatingConfig *RatingConfig `json:"rating_config,omitempty"`
}

// List is a user-defined collection: a rating type plus an ordered set of
// field definitions that every entry must satisfy.
type List struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	RatingType       RatingType        `json:"rating_type"`
	RatingConfig     *RatingConfig     `json:"rating_config,omitempty"`
	FieldDefinitions []FieldDefinition `json:"field_definitions"`
}

// Field returns the field definition with the given id, or nil.
func (l *List) Field(id string) *FieldDefinition {
	for i := range l.FieldDefinitions {
		if l.FieldDefinitions[i].ID == id {
			return &l.FieldDefinitions[i]
		}
	}
	return nil
}

// NameField returns the reserved Name field definition, or nil if the
// list is malformed (a list without it violates the List invariant).
func (l *List) NameField() *FieldDefinition {
	return l.Field(NameFieldID)
}

// ListSource fetches list schemas. Implemented by the store; the engine
// only ever sees the already-fetched List.
type ListSource interface {
	FetchList(ctx context.Context, listID string) (*List, error)
}

// EntrySource fetches the entries of a list as an immutable snapshot.
type EntrySource interface {
	FetchEntries(ctx context.Context, listID string) ([]Entry, error)
}
