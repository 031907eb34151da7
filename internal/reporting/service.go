// Package reporting wires the pure report engine to its collaborators:
// stored statement batches, the persisted rule configuration and the
// exception map. Every evaluation loads fresh snapshots and rebuilds the
// report from scratch.
package reporting

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvisser/banknote/internal/exception"
	"github.com/mvisser/banknote/internal/report"
	"github.com/mvisser/banknote/internal/rules"
	"github.com/mvisser/banknote/internal/statement"
	"github.com/mvisser/banknote/internal/window"
)

type Service struct {
	statements *statement.Service
	rules      *rules.Service
	exceptions *exception.Service

	// savingsCategory is excluded from income/outgoing totals and reported
	// separately in the summary.
	savingsCategory string
}

func NewService(statements *statement.Service, rulesSvc *rules.Service, exceptions *exception.Service, savingsCategory string) *Service {
	return &Service{
		statements:      statements,
		rules:           rulesSvc,
		exceptions:      exceptions,
		savingsCategory: savingsCategory,
	}
}

// Build evaluates one window of a batch. An empty month means the whole
// batch. Configuration problems (invalid pattern) surface as errors here,
// at load time, never mid-record.
func (s *Service) Build(ctx context.Context, batchID uuid.UUID, month string, paydayToPayday bool) (*report.Report, error) {
	batch, err := s.statements.Get(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("getting batch: %w", err)
	}

	records := batch.Records

	if month != "" {
		records, err = window.Filter(records, month, paydayToPayday)
		if err != nil {
			return nil, err
		}
	}

	matcher, err := s.matcher(ctx)
	if err != nil {
		return nil, err
	}

	exceptions, err := s.exceptions.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	rep := report.Build(records, matcher, exceptions)

	return &rep, nil
}

// Months returns the month keys present in a batch, in statement order.
func (s *Service) Months(ctx context.Context, batchID uuid.UUID) ([]string, error) {
	batch, err := s.statements.Get(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("getting batch: %w", err)
	}

	return window.Months(batch.Records), nil
}

func (s *Service) matcher(ctx context.Context) (*rules.Matcher, error) {
	cfg, err := s.rules.Load(ctx)
	if err != nil {
		return nil, err
	}

	return rules.Compile(cfg)
}
