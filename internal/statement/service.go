package statement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvisser/banknote/internal/record"
)

var ErrNotFound = errors.New("batch not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=statement
type Repository interface {
	CreateBatch(ctx context.Context, batch *Batch) error
	GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error)
	ListBatches(ctx context.Context) ([]BatchInfo, error)
	DeleteBatch(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a parsed statement as a new batch.
func (s *Service) Create(ctx context.Context, filename string, records []record.Record) (*Batch, error) {
	batch := &Batch{
		ID:       uuid.New(),
		Filename: filename,
		Records:  records,
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("creating batch: %w", err)
	}

	return batch, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Batch, error) {
	return s.repo.GetBatch(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]BatchInfo, error) {
	return s.repo.ListBatches(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBatch(ctx, id)
}
