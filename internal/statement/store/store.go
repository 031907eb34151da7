package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvisser/banknote/internal/record"
	"github.com/mvisser/banknote/internal/statement"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateBatch inserts the batch header and its records in one transaction.
// The record's ingestion id is stored as seq so reads reproduce the exact
// batch the importer produced.
func (s *Store) CreateBatch(ctx context.Context, batch *statement.Batch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	headerQuery := `
		INSERT INTO statement_batches (id, filename, created_at)
		VALUES ($1, $2, NOW())
		RETURNING created_at
	`

	if err := tx.QueryRowContext(ctx, headerQuery, batch.ID, batch.Filename).Scan(&batch.CreatedAt); err != nil {
		return fmt.Errorf("creating batch: %w", err)
	}

	recordQuery := `
		INSERT INTO statement_records
			(batch_id, seq, date, account_iban, amount, type, name, counterparty_iban, mutation_code, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, rec := range batch.Records {
		_, err := tx.ExecContext(ctx, recordQuery,
			batch.ID,
			rec.ID,
			rec.Date,
			rec.AccountIBAN,
			rec.Amount,
			string(rec.Type),
			rec.Name,
			rec.CounterpartyIBAN,
			rec.MutationCode,
			rec.Description,
		)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	return nil
}

func (s *Store) GetBatch(ctx context.Context, id uuid.UUID) (*statement.Batch, error) {
	headerQuery := `SELECT id, filename, created_at FROM statement_batches WHERE id = $1`

	var batch statement.Batch

	err := s.db.QueryRowContext(ctx, headerQuery, id).Scan(&batch.ID, &batch.Filename, &batch.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, statement.ErrNotFound
		}

		return nil, fmt.Errorf("getting batch: %w", err)
	}

	recordQuery := `
		SELECT seq, date, account_iban, amount, type, name, counterparty_iban, mutation_code, description
		FROM statement_records
		WHERE batch_id = $1
		ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, recordQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec     record.Record
			typeStr string
		)

		err := rows.Scan(
			&rec.ID, &rec.Date, &rec.AccountIBAN, &rec.Amount, &typeStr,
			&rec.Name, &rec.CounterpartyIBAN, &rec.MutationCode, &rec.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		rec.Type = record.Type(typeStr)
		batch.Records = append(batch.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return &batch, nil
}

func (s *Store) ListBatches(ctx context.Context) ([]statement.BatchInfo, error) {
	query := `
		SELECT b.id, b.filename, b.created_at, COUNT(r.seq)
		FROM statement_batches b
		LEFT JOIN statement_records r ON r.batch_id = b.id
		GROUP BY b.id, b.filename, b.created_at
		ORDER BY b.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	defer rows.Close()

	var batches []statement.BatchInfo

	for rows.Next() {
		var info statement.BatchInfo
		if err := rows.Scan(&info.ID, &info.Filename, &info.CreatedAt, &info.RecordCount); err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}

		batches = append(batches, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}

	return batches, nil
}

func (s *Store) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM statement_batches WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting batch: %w", err)
	}

	return nil
}
