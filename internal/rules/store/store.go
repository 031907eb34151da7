package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvisser/banknote/internal/rules"
)

// Store persists the rule configuration as a single row of raw JSON text.
// Validation happens in the service layer; by the time text reaches here it
// has already been parsed and compiled.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetRaw(ctx context.Context) ([]byte, error) {
	query := `SELECT raw FROM report_config WHERE id = 1`

	var raw []byte

	err := s.db.QueryRowContext(ctx, query).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, rules.ErrNotFound
		}

		return nil, fmt.Errorf("getting configuration: %w", err)
	}

	return raw, nil
}

func (s *Store) SaveRaw(ctx context.Context, raw []byte) error {
	query := `
		INSERT INTO report_config (id, raw, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET raw = EXCLUDED.raw, updated_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query, raw)
	if err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	return nil
}
