package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/mvisser/banknote/internal/record"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=rules
type Repository interface {
	GetRaw(ctx context.Context) ([]byte, error)
	SaveRaw(ctx context.Context, raw []byte) error
}

// Service manages the persisted rule configuration. Every write is parsed
// and compiled before it reaches storage, so the last-known-good
// configuration stays active (and stored) until a valid replacement is
// supplied.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Raw returns the persisted configuration text, or the built-in default
// when nothing has been saved yet.
func (s *Service) Raw(ctx context.Context) ([]byte, error) {
	raw, err := s.repo.GetRaw(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return json.MarshalIndent(DefaultConfig(), "", "  ")
		}

		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return raw, nil
}

// Load returns the active configuration with category order preserved.
func (s *Service) Load(ctx context.Context) (Config, error) {
	raw, err := s.repo.GetRaw(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return DefaultConfig(), nil
		}

		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}

	return Parse(raw)
}

// Save validates raw configuration text and persists it. Malformed JSON
// yields a MalformedConfigError and an invalid pattern an
// InvalidRulePatternError; in both cases storage is left untouched.
func (s *Service) Save(ctx context.Context, raw []byte) error {
	cfg, err := Parse(raw)
	if err != nil {
		return err
	}

	if _, err := Compile(cfg); err != nil {
		return err
	}

	if err := s.repo.SaveRaw(ctx, raw); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	return nil
}

// AddRule appends a single (field, pattern) rule to an existing category and
// persists the result.
func (s *Service) AddRule(ctx context.Context, category, field, pattern string) error {
	if !slices.Contains(record.Fields, field) {
		return fmt.Errorf("unknown record field %q", field)
	}

	cfg, err := s.Load(ctx)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(cfg.Categories, func(c Category) bool { return c.Name == category })
	if idx < 0 {
		return fmt.Errorf("unknown category %q", category)
	}

	cfg.Categories[idx].Rules = append(cfg.Categories[idx].Rules, Rule{field: pattern})

	if _, err := Compile(cfg); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	if err := s.repo.SaveRaw(ctx, raw); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	return nil
}
