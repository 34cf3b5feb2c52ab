package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tallylists/tally/internal/listdef"
	"github.com/tallylists/tally/internal/schema"
)

// Error codes for loading failures.
const (
	ErrCodeListDef  = "LIST_DEF"  // list definition failed to compile
	ErrCodeListBad  = "LIST_BAD"  // list definition has structural errors
	ErrCodeEntries  = "ENTRIES"   // entries file unreadable or malformed
	ErrCodeBadFlags = "BAD_FLAGS" // contradictory or malformed flags
)

// loadList compiles a list definition file, reporting structural
// problems through the formatter. Returns nil when the list is unusable
// (the formatter has already produced output in that case).
func loadList(f *OutputFormatter, path string) (*schema.List, error) {
	list, defErrs, err := listdef.Load(path)
	if err != nil {
		if ferr := f.Error(ErrCodeListDef, err.Error(), nil); ferr != nil {
			return nil, ferr
		}
		return nil, &ExitError{Code: ExitCommandError, Message: "list definition failed to compile", Err: err}
	}
	if len(defErrs) > 0 {
		if ferr := f.Error(ErrCodeListBad, fmt.Sprintf("list definition has %d problem(s)", len(defErrs)), defErrs); ferr != nil {
			return nil, ferr
		}
		if f.Format == "text" {
			for _, e := range defErrs {
				fmt.Fprintf(f.Writer, "  %s\n", e.Error())
			}
		}
		return nil, &ExitError{Code: ExitCommandError, Message: "list definition is invalid"}
	}
	return list, nil
}

// entryDoc is the YAML shape of one fixture entry.
type entryDoc struct {
	ID        string         `yaml:"id"`
	Rating    *float64       `yaml:"rating,omitempty"`
	CreatedAt time.Time      `yaml:"created_at"`
	UpdatedAt *time.Time     `yaml:"updated_at,omitempty"`
	Values    map[string]any `yaml:"values"`
}

// entriesDoc is the YAML shape of an entries fixture file.
type entriesDoc struct {
	Entries []entryDoc `yaml:"entries"`
}

// loadEntries reads an entries fixture file. Strict field validation
// catches typos ("value:" vs "values:") rather than silently dropping
// data.
func loadEntries(path, listID string) ([]schema.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entries file: %w", err)
	}

	var doc entriesDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse entries YAML: %w", err)
	}

	entries := make([]schema.Entry, 0, len(doc.Entries))
	for i, d := range doc.Entries {
		e, err := d.toEntry(listID)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (d entryDoc) toEntry(listID string) (schema.Entry, error) {
	if d.ID == "" {
		return schema.Entry{}, fmt.Errorf("id is required")
	}

	values := make(schema.FieldValues, len(d.Values))
	for k, v := range d.Values {
		fv, err := toFieldValue(v)
		if err != nil {
			return schema.Entry{}, fmt.Errorf("values[%q]: %w", k, err)
		}
		values[k] = fv
	}

	updated := d.CreatedAt
	if d.UpdatedAt != nil {
		updated = *d.UpdatedAt
	}

	return schema.Entry{
		ID:          d.ID,
		ListID:      listID,
		Rating:      d.Rating,
		FieldValues: values,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updated,
	}, nil
}

// toFieldValue converts a decoded YAML value into the sealed union.
// The same shapes the JSON codec accepts: scalars, null, and arrays of
// strings. Anything else is a malformed fixture.
func toFieldValue(v any) (schema.FieldValue, error) {
	switch val := v.(type) {
	case nil:
		return schema.NullValue{}, nil
	case string:
		return schema.TextValue(val), nil
	case bool:
		return schema.BoolValue(val), nil
	case int:
		return schema.NumberValue(val), nil
	case float64:
		return schema.NumberValue(val), nil
	case []any:
		items := make(schema.ListValue, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("array element %d is %T, want string", i, item)
			}
			items[i] = s
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
