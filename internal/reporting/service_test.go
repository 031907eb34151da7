package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mvisser/banknote/internal/exception"
	"github.com/mvisser/banknote/internal/record"
	"github.com/mvisser/banknote/internal/report"
	"github.com/mvisser/banknote/internal/reporting"
	"github.com/mvisser/banknote/internal/rules"
	"github.com/mvisser/banknote/internal/statement"
)

const savingsCategory = "Spaarrekening"

type fixture struct {
	svc       *reporting.Service
	stmtRepo  *statement.MockRepository
	rulesRepo *rules.MockRepository
	excRepo   *exception.MockRepository
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	stmtRepo := statement.NewMockRepository(ctrl)
	rulesRepo := rules.NewMockRepository(ctrl)
	excRepo := exception.NewMockRepository(ctrl)

	svc := reporting.NewService(
		statement.NewService(stmtRepo),
		rules.NewService(rulesRepo),
		exception.NewService(excRepo),
		savingsCategory,
	)

	return fixture{svc: svc, stmtRepo: stmtRepo, rulesRepo: rulesRepo, excRepo: excRepo}
}

func onDate(y, m, d int, amount float64, typ record.Type, description string) record.Record {
	return record.Record{
		Date:        time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC),
		Amount:      amount,
		Type:        typ,
		Description: description,
	}
}

const testConfig = `{
	"Loon": [{"description": "Salaris"}],
	"Voedsel": [{"description": "Jumbo"}],
	"Spaarrekening": [{"description": "Spaarrekening"}]
}`

func TestService_Build(t *testing.T) {
	f := newFixture(t)
	batchID := uuid.New()

	batch := &statement.Batch{
		ID: batchID,
		Records: []record.Record{
			onDate(2024, 3, 25, 2400, record.TypeCredit, "Salaris maart"),
			onDate(2024, 3, 12, 25, record.TypeDebit, "Jumbo 123"),
			onDate(2024, 4, 2, 30, record.TypeDebit, "Jumbo 456"),
		},
	}

	f.stmtRepo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch, nil)
	f.rulesRepo.EXPECT().GetRaw(gomock.Any()).Return([]byte(testConfig), nil)
	f.excRepo.EXPECT().All(gomock.Any()).Return(map[string]string{}, nil)

	rep, err := f.svc.Build(context.Background(), batchID, "03-2024", false)
	require.NoError(t, err)

	require.Len(t, rep.IncomeCategories, 1)
	assert.Equal(t, "Loon", rep.IncomeCategories[0].Name)

	require.Len(t, rep.ExpenseCategories, 1)
	assert.Equal(t, 25.0, rep.ExpenseCategories[0].Amount, "records outside the month are excluded")
}

func TestService_Build_WholeBatch(t *testing.T) {
	f := newFixture(t)
	batchID := uuid.New()

	batch := &statement.Batch{
		ID: batchID,
		Records: []record.Record{
			onDate(2024, 3, 12, 25, record.TypeDebit, "Jumbo 123"),
			onDate(2024, 4, 2, 30, record.TypeDebit, "Jumbo 456"),
		},
	}

	f.stmtRepo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch, nil)
	f.rulesRepo.EXPECT().GetRaw(gomock.Any()).Return([]byte(testConfig), nil)
	f.excRepo.EXPECT().All(gomock.Any()).Return(map[string]string{}, nil)

	rep, err := f.svc.Build(context.Background(), batchID, "", false)
	require.NoError(t, err)

	require.Len(t, rep.ExpenseCategories, 1)
	assert.Equal(t, 55.0, rep.ExpenseCategories[0].Amount)
}

func TestService_Build_InvalidPatternSurfacesAtLoad(t *testing.T) {
	f := newFixture(t)
	batchID := uuid.New()

	f.stmtRepo.EXPECT().GetBatch(gomock.Any(), batchID).Return(&statement.Batch{ID: batchID}, nil)
	f.rulesRepo.EXPECT().GetRaw(gomock.Any()).Return([]byte(`{"Broken": [{"name": "("}]}`), nil)

	_, err := f.svc.Build(context.Background(), batchID, "", false)

	var invalid *rules.InvalidRulePatternError
	assert.ErrorAs(t, err, &invalid)
}

func TestService_Build_BatchNotFound(t *testing.T) {
	f := newFixture(t)
	batchID := uuid.New()

	f.stmtRepo.EXPECT().GetBatch(gomock.Any(), batchID).Return(nil, statement.ErrNotFound)

	_, err := f.svc.Build(context.Background(), batchID, "", false)
	assert.ErrorIs(t, err, statement.ErrNotFound)
}

func TestService_Summarize(t *testing.T) {
	f := newFixture(t)

	rep := &report.Report{
		IncomeCategories: []report.Category{
			{Name: "Loon", Amount: 2400},
		},
		ExpenseCategories: []report.Category{
			{Name: "Voedsel", Amount: 300},
			{Name: savingsCategory, Amount: 500},
		},
		UnmatchedIncomeTotal:  50,
		UnmatchedExpenseTotal: 75,
	}

	sum := f.svc.Summarize(rep)

	assert.Equal(t, 2450.0, sum.IncomeTotal, "unmatched income counts toward the total")
	assert.Equal(t, 375.0, sum.OutgoingTotal, "savings is excluded, unmatched included")
	assert.Equal(t, 500.0, sum.SavingsTotal)
	assert.Equal(t, 1600.0, sum.RestTotal, "rest reflects categorized flow only")
}

func TestService_Summarize_WithdrawalFromSavings(t *testing.T) {
	f := newFixture(t)

	rep := &report.Report{
		IncomeCategories: []report.Category{
			{Name: savingsCategory, Amount: 200},
		},
		ExpenseCategories: []report.Category{
			{Name: savingsCategory, Amount: 500},
		},
	}

	sum := f.svc.Summarize(rep)

	assert.Zero(t, sum.IncomeTotal)
	assert.Zero(t, sum.OutgoingTotal)
	assert.Equal(t, 300.0, sum.SavingsTotal, "withdrawals offset deposits")
	assert.Equal(t, -300.0, sum.RestTotal)
}

func TestService_MonthlyTotals(t *testing.T) {
	f := newFixture(t)
	batchID := uuid.New()

	batch := &statement.Batch{
		ID: batchID,
		Records: []record.Record{
			onDate(2024, 3, 25, 2400, record.TypeCredit, "Salaris maart"),
			onDate(2024, 3, 12, 25, record.TypeDebit, "Jumbo 123"),
			onDate(2024, 4, 25, 2400, record.TypeCredit, "Salaris april"),
			onDate(2024, 4, 2, 30, record.TypeDebit, "Jumbo 456"),
		},
	}

	f.stmtRepo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch, nil)
	f.rulesRepo.EXPECT().GetRaw(gomock.Any()).Return([]byte(testConfig), nil)
	f.excRepo.EXPECT().All(gomock.Any()).Return(map[string]string{}, nil)

	totals, err := f.svc.MonthlyTotals(context.Background(), batchID, false)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "03-2024", totals[0].Month)
	assert.Equal(t, 2400.0, totals[0].Income)
	assert.Equal(t, 25.0, totals[0].Outgoing)

	assert.Equal(t, "04-2024", totals[1].Month)
	assert.Equal(t, 30.0, totals[1].Outgoing)
}

func TestService_CategorySeries(t *testing.T) {
	f := newFixture(t)
	batchID := uuid.New()

	batch := &statement.Batch{
		ID: batchID,
		Records: []record.Record{
			onDate(2024, 1, 5, 100, record.TypeDebit, "Jumbo"),
			onDate(2024, 2, 5, 200, record.TypeDebit, "Jumbo"),
			onDate(2024, 2, 10, 20, record.TypeCredit, "Jumbo refund"),
			onDate(2024, 3, 5, 999, record.TypeDebit, "Jumbo"),
		},
	}

	f.stmtRepo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch, nil)
	f.rulesRepo.EXPECT().GetRaw(gomock.Any()).Return([]byte(testConfig), nil)
	f.excRepo.EXPECT().All(gomock.Any()).Return(map[string]string{}, nil)

	series, err := f.svc.CategorySeries(context.Background(), batchID, "Voedsel", false)
	require.NoError(t, err)

	// The final month is dropped as incomplete.
	require.Len(t, series.Points, 2)
	assert.Equal(t, "01-2024", series.Points[0].Month)
	assert.Equal(t, 100.0, series.Points[0].Total)
	assert.Equal(t, "02-2024", series.Points[1].Month)
	assert.Equal(t, 180.0, series.Points[1].Total, "refunds net against spending")

	assert.Equal(t, 280.0, series.Total)
	assert.Equal(t, 140.0, series.Average)
}

func TestService_Months(t *testing.T) {
	f := newFixture(t)
	batchID := uuid.New()

	batch := &statement.Batch{
		ID: batchID,
		Records: []record.Record{
			onDate(2024, 3, 12, 25, record.TypeDebit, "x"),
			onDate(2024, 1, 5, 10, record.TypeDebit, "y"),
		},
	}

	f.stmtRepo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch, nil)

	months, err := f.svc.Months(context.Background(), batchID)
	require.NoError(t, err)
	assert.Equal(t, []string{"03-2024", "01-2024"}, months)
}
