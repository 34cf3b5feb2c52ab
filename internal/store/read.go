package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tallylists/tally/internal/schema"
)

// FetchList implements schema.ListSource.
func (s *Store) FetchList(ctx context.Context, listID string) (*schema.List, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, rating_type, rating_config, field_definitions
		FROM lists
		WHERE id = ?
	`, listID)

	var (
		list       schema.List
		ratingType string
		cfgText    *string
		defsText   string
	)
	err := row.Scan(&list.ID, &list.Name, &ratingType, &cfgText, &defsText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query list: %w", err)
	}

	list.RatingType = schema.RatingType(ratingType)
	if list.RatingConfig, err = unmarshalRatingConfig(cfgText); err != nil {
		return nil, err
	}
	if list.FieldDefinitions, err = unmarshalFieldDefinitions(defsText); err != nil {
		return nil, err
	}
	return &list, nil
}

// FetchEntries implements schema.EntrySource. Entries come back in
// creation order (oldest first) with id as the deterministic tie-break;
// any further ordering belongs to the engine.
func (s *Store) FetchEntries(ctx context.Context, listID string) ([]schema.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, list_id, rating, field_values, created_at, updated_at
		FROM entries
		WHERE list_id = ?
		ORDER BY created_at ASC, id COLLATE BINARY ASC
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []schema.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// GetEntry returns a single entry by id.
func (s *Store) GetEntry(ctx context.Context, entryID string) (*schema.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, list_id, rating, field_values, created_at, updated_at
		FROM entries
		WHERE id = ?
	`, entryID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (schema.Entry, error) {
	var (
		e          schema.Entry
		rating     sql.NullFloat64
		valuesText string
		createdMs  int64
		updatedMs  int64
	)
	if err := row.Scan(&e.ID, &e.ListID, &rating, &valuesText, &createdMs, &updatedMs); err != nil {
		return schema.Entry{}, err
	}

	if rating.Valid {
		e.Rating = &rating.Float64
	}
	var err error
	if e.FieldValues, err = unmarshalFieldValues(valuesText); err != nil {
		return schema.Entry{}, err
	}
	e.CreatedAt = time.UnixMilli(createdMs).UTC()
	e.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return e, nil
}
