// Package exception manages manual category overrides. Overrides are keyed
// by the record's content hash rather than its batch id, so they survive
// re-ingesting the same statement, and they persist independently of the
// rule set.
package exception

import (
	"context"
	"fmt"

	"github.com/mvisser/banknote/internal/record"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=exception
type Repository interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, hash, category string) error
	Delete(ctx context.Context, hash string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Snapshot returns the full hash->category override map. Report evaluation
// works against a snapshot so a concurrent edit never tears a report.
func (s *Service) Snapshot(ctx context.Context) (map[string]string, error) {
	m, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading exceptions: %w", err)
	}

	return m, nil
}

// Assign overrides the record's category. The override wins over any rule
// match on every subsequent report evaluation.
func (s *Service) Assign(ctx context.Context, rec record.Record, category string) error {
	if err := s.repo.Set(ctx, rec.Hash(), category); err != nil {
		return fmt.Errorf("saving exception: %w", err)
	}

	return nil
}

// Remove drops the record's override, returning it to rule-based matching.
func (s *Service) Remove(ctx context.Context, rec record.Record) error {
	if err := s.repo.Delete(ctx, rec.Hash()); err != nil {
		return fmt.Errorf("removing exception: %w", err)
	}

	return nil
}
