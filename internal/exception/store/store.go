package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Store persists exception overrides as (record_hash, category) rows.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) All(ctx context.Context) (map[string]string, error) {
	query := `SELECT record_hash, category FROM exceptions`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing exceptions: %w", err)
	}
	defer rows.Close()

	m := make(map[string]string)

	for rows.Next() {
		var hash, category string
		if err := rows.Scan(&hash, &category); err != nil {
			return nil, fmt.Errorf("scanning exception: %w", err)
		}

		m[hash] = category
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exceptions: %w", err)
	}

	return m, nil
}

func (s *Store) Set(ctx context.Context, hash, category string) error {
	query := `
		INSERT INTO exceptions (record_hash, category, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (record_hash) DO UPDATE SET category = EXCLUDED.category
	`

	_, err := s.db.ExecContext(ctx, query, hash, category)
	if err != nil {
		return fmt.Errorf("setting exception: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, hash string) error {
	query := `DELETE FROM exceptions WHERE record_hash = $1`

	_, err := s.db.ExecContext(ctx, query, hash)
	if err != nil {
		return fmt.Errorf("deleting exception: %w", err)
	}

	return nil
}
