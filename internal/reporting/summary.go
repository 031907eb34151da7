package reporting

import (
	"context"

	"github.com/google/uuid"

	"github.com/mvisser/banknote/internal/report"
	"github.com/mvisser/banknote/internal/window"
)

// Summary is the headline view of a report. The savings category is carved
// out of both sides: moving money to savings is neither income nor spending.
type Summary struct {
	IncomeTotal   float64 `json:"incomeTotal"`
	OutgoingTotal float64 `json:"outgoingTotal"`
	SavingsTotal  float64 `json:"savingsTotal"`
	RestTotal     float64 `json:"restTotal"`
}

// Summarize derives the headline totals from a report. Income and outgoing
// include the unmatched totals; the rest total deliberately does not, so it
// reflects only categorized flow.
func (s *Service) Summarize(rep *report.Report) Summary {
	var sum Summary

	var income, outgoing float64

	for _, cat := range rep.IncomeCategories {
		if cat.Name == s.savingsCategory {
			sum.SavingsTotal -= cat.Amount
			continue
		}

		income += cat.Amount
	}

	for _, cat := range rep.ExpenseCategories {
		if cat.Name == s.savingsCategory {
			sum.SavingsTotal += cat.Amount
			continue
		}

		outgoing += cat.Amount
	}

	sum.IncomeTotal = income + rep.UnmatchedIncomeTotal
	sum.OutgoingTotal = outgoing + rep.UnmatchedExpenseTotal
	sum.RestTotal = income - outgoing - sum.SavingsTotal

	return sum
}

// MonthTotals is one bar of the per-month income/outgoing overview.
type MonthTotals struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Outgoing float64 `json:"outgoing"`
}

// MonthlyTotals evaluates every month of the batch and returns its summary
// income and outgoing totals, in statement order.
func (s *Service) MonthlyTotals(ctx context.Context, batchID uuid.UUID, paydayToPayday bool) ([]MonthTotals, error) {
	batch, err := s.statements.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	matcher, err := s.matcher(ctx)
	if err != nil {
		return nil, err
	}

	exceptions, err := s.exceptions.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	months := window.Months(batch.Records)
	totals := make([]MonthTotals, 0, len(months))

	for _, month := range months {
		records, err := window.Filter(batch.Records, month, paydayToPayday)
		if err != nil {
			return nil, err
		}

		rep := report.Build(records, matcher, exceptions)
		sum := s.Summarize(&rep)

		totals = append(totals, MonthTotals{
			Month:    month,
			Income:   sum.IncomeTotal,
			Outgoing: sum.OutgoingTotal,
		})
	}

	return totals, nil
}

// SeriesPoint is one month of a category's net total.
type SeriesPoint struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// Series tracks one category across the months of a batch.
type Series struct {
	Category string        `json:"category"`
	Points   []SeriesPoint `json:"points"`
	Total    float64       `json:"total"`
	Average  float64       `json:"average"`
}

// CategorySeries returns the named category's net monthly totals across the
// batch. With incomeIsPositive the net is income minus expense, otherwise
// the reverse (the natural reading for an expense category). The batch's
// final month is dropped as incomplete.
func (s *Service) CategorySeries(ctx context.Context, batchID uuid.UUID, category string, incomeIsPositive bool) (*Series, error) {
	batch, err := s.statements.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	matcher, err := s.matcher(ctx)
	if err != nil {
		return nil, err
	}

	exceptions, err := s.exceptions.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	months := window.Months(batch.Records)
	if len(months) > 0 {
		months = months[:len(months)-1]
	}

	series := &Series{Category: category, Points: make([]SeriesPoint, 0, len(months))}

	for _, month := range months {
		records, err := window.Filter(batch.Records, month, false)
		if err != nil {
			return nil, err
		}

		rep := report.Build(records, matcher, exceptions)

		income := categoryAmount(rep.IncomeCategories, category)
		expense := categoryAmount(rep.ExpenseCategories, category)

		total := income - expense
		if !incomeIsPositive {
			total = expense - income
		}

		series.Points = append(series.Points, SeriesPoint{Month: month, Total: total})
		series.Total += total
	}

	if len(series.Points) > 0 {
		series.Average = series.Total / float64(len(series.Points))
	}

	return series, nil
}

func categoryAmount(categories []report.Category, name string) float64 {
	for _, cat := range categories {
		if cat.Name == name {
			return cat.Amount
		}
	}

	return 0
}
