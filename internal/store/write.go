package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallylists/tally/internal/schema"
	"github.com/tallylists/tally/internal/validate"
)

// PutList inserts or replaces a list schema. Replacing a list's field
// definitions does not rewrite its entries; the migration subsystem owns
// that and hands the engine already-migrated entries.
func (s *Store) PutList(ctx context.Context, list *schema.List) (*schema.List, error) {
	stored := *list
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	cfgText, err := marshalRatingConfig(stored.RatingConfig)
	if err != nil {
		return nil, fmt.Errorf("put list: %w", err)
	}
	defsText, err := marshalFieldDefinitions(stored.FieldDefinitions)
	if err != nil {
		return nil, fmt.Errorf("put list: %w", err)
	}

	now := s.now().UTC().UnixMilli()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lists (id, name, rating_type, rating_config, field_definitions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			rating_type = excluded.rating_type,
			rating_config = excluded.rating_config,
			field_definitions = excluded.field_definitions,
			updated_at = excluded.updated_at
	`, stored.ID, stored.Name, string(stored.RatingType), cfgText, defsText, now, now)
	if err != nil {
		return nil, fmt.Errorf("put list: %w", err)
	}

	return &stored, nil
}

// CreateEntry validates a candidate against the list schema and, when
// it passes, persists it as a new entry. An invalid candidate returns
// *RejectedError with the itemized failures and writes nothing.
func (s *Store) CreateEntry(ctx context.Context, list *schema.List, c validate.Candidate) (*schema.Entry, error) {
	res, err := validate.Validate(list, c, s.Policy)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	if !res.Valid {
		return nil, &RejectedError{Result: res}
	}

	valuesText, err := marshalFieldValues(c.FieldValues)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	// Millisecond precision matches the stored column, so the returned
	// entry compares equal to a later read of the same row.
	now := s.now().UTC().Truncate(time.Millisecond)
	entry := schema.Entry{
		ID:          uuid.NewString(),
		ListID:      list.ID,
		Rating:      normalizeRating(c.Rating),
		FieldValues: c.FieldValues,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (id, list_id, rating, field_values, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.ListID, ratingParam(entry.Rating), valuesText, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	return &entry, nil
}

// UpdateEntry validates a candidate and replaces an existing entry's
// rating and field values. CreatedAt is preserved; UpdatedAt bumps.
func (s *Store) UpdateEntry(ctx context.Context, list *schema.List, entryID string, c validate.Candidate) (*schema.Entry, error) {
	res, err := validate.Validate(list, c, s.Policy)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	if !res.Valid {
		return nil, &RejectedError{Result: res}
	}

	valuesText, err := marshalFieldValues(c.FieldValues)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	rating := normalizeRating(c.Rating)
	result, err := s.db.ExecContext(ctx, `
		UPDATE entries
		SET rating = ?, field_values = ?, updated_at = ?
		WHERE id = ? AND list_id = ?
	`, ratingParam(rating), valuesText, now.UnixMilli(), entryID, list.ID)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetEntry(ctx, entryID)
}

// DeleteEntry removes an entry by id.
func (s *Store) DeleteEntry(ctx context.Context, entryID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, entryID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeRating maps the 0 sentinel to a stored NULL so reads never
// see the legacy encoding.
func normalizeRating(r *float64) *float64 {
	if r == nil || *r == 0 {
		return nil
	}
	return r
}

func ratingParam(r *float64) any {
	if r == nil {
		return nil
	}
	return *r
}
