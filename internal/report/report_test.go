package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvisser/banknote/internal/record"
	"github.com/mvisser/banknote/internal/report"
	"github.com/mvisser/banknote/internal/rules"
)

func matcher(t *testing.T, raw string) *rules.Matcher {
	t.Helper()

	cfg, err := rules.Parse([]byte(raw))
	require.NoError(t, err)

	m, err := rules.Compile(cfg)
	require.NoError(t, err)

	return m
}

func debit(id int, amount float64, description string) record.Record {
	return record.Record{
		ID:          id,
		Date:        time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Amount:      amount,
		Type:        record.TypeDebit,
		Description: description,
	}
}

func credit(id int, amount float64, description string) record.Record {
	r := debit(id, amount, description)
	r.Type = record.TypeCredit

	return r
}

func TestBuild_SplitsByType(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}], "Salary": [{"description": "Salaris"}]}`)

	records := []record.Record{
		debit(0, 25.10, "Jumbo 123"),
		credit(1, 2400, "Salaris maart"),
	}

	rep := report.Build(records, m, nil)

	require.Len(t, rep.ExpenseCategories, 1)
	assert.Equal(t, "Groceries", rep.ExpenseCategories[0].Name)
	assert.Equal(t, 25.10, rep.ExpenseCategories[0].Amount)

	require.Len(t, rep.IncomeCategories, 1)
	assert.Equal(t, "Salary", rep.IncomeCategories[0].Name)
	assert.Equal(t, 2400.0, rep.IncomeCategories[0].Amount)
}

func TestBuild_SameCategoryOnBothSides(t *testing.T) {
	// A refund and a purchase can share a category name; the income and
	// expense aggregates stay separate.
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}]}`)

	records := []record.Record{
		debit(0, 30, "Jumbo 123"),
		credit(1, 5, "Jumbo refund"),
	}

	rep := report.Build(records, m, nil)

	require.Len(t, rep.ExpenseCategories, 1)
	assert.Equal(t, 30.0, rep.ExpenseCategories[0].Amount)

	require.Len(t, rep.IncomeCategories, 1)
	assert.Equal(t, 5.0, rep.IncomeCategories[0].Amount)
}

func TestBuild_Unmatched(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}]}`)

	records := []record.Record{
		debit(0, 12, "mystery"),
		debit(1, 8, "another mystery"),
		credit(2, 100, "unknown deposit"),
	}

	rep := report.Build(records, m, nil)

	assert.Empty(t, rep.ExpenseCategories)
	assert.Empty(t, rep.IncomeCategories)

	require.Len(t, rep.UnmatchedExpenseRecords, 2)
	assert.Equal(t, 20.0, rep.UnmatchedExpenseTotal)

	require.Len(t, rep.UnmatchedIncomeRecords, 1)
	assert.Equal(t, 100.0, rep.UnmatchedIncomeTotal)
}

func TestBuild_ExceptionOverridesRule(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}]}`)

	rec := debit(0, 15, "Jumbo 123")
	exceptions := map[string]string{rec.Hash(): "Gifts"}

	rep := report.Build([]record.Record{rec}, m, exceptions)

	require.Len(t, rep.ExpenseCategories, 1)
	assert.Equal(t, "Gifts", rep.ExpenseCategories[0].Name)

	require.Len(t, rep.ExpenseCategories[0].MatchedRecords, 1)
	assert.True(t, rep.ExpenseCategories[0].MatchedRecords[0].IsException)
}

func TestBuild_ExceptionRescuesUnmatched(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}]}`)

	rec := debit(0, 15, "mystery")
	exceptions := map[string]string{rec.Hash(): "Groceries"}

	rep := report.Build([]record.Record{rec}, m, exceptions)

	assert.Empty(t, rep.UnmatchedExpenseRecords)
	require.Len(t, rep.ExpenseCategories, 1)
	assert.Equal(t, "Groceries", rep.ExpenseCategories[0].Name)
	assert.True(t, rep.ExpenseCategories[0].MatchedRecords[0].IsException)
}

func TestBuild_ExceptionIgnoresID(t *testing.T) {
	// The override keys on content, so a re-ingested copy of the record
	// with a fresh id still lands in the overridden category.
	m := matcher(t, `{}`)

	original := debit(0, 15, "mystery")
	exceptions := map[string]string{original.Hash(): "Gifts"}

	reIngested := original
	reIngested.ID = 99

	rep := report.Build([]record.Record{reIngested}, m, exceptions)

	require.Len(t, rep.ExpenseCategories, 1)
	assert.Equal(t, "Gifts", rep.ExpenseCategories[0].Name)
}

func TestBuild_RuleMatchIsNotException(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}]}`)

	rep := report.Build([]record.Record{debit(0, 15, "Jumbo")}, m, nil)

	require.Len(t, rep.ExpenseCategories, 1)
	assert.False(t, rep.ExpenseCategories[0].MatchedRecords[0].IsException)
}

func TestBuild_SortsDescending(t *testing.T) {
	m := matcher(t, `{
		"Small": [{"description": "small"}],
		"Big": [{"description": "big"}],
		"Mid": [{"description": "mid"}]
	}`)

	records := []record.Record{
		debit(0, 10, "small"),
		debit(1, 300, "big"),
		debit(2, 50, "mid"),
		debit(3, 200, "big"),
	}

	rep := report.Build(records, m, nil)

	require.Len(t, rep.ExpenseCategories, 3)
	assert.Equal(t, "Big", rep.ExpenseCategories[0].Name)
	assert.Equal(t, "Mid", rep.ExpenseCategories[1].Name)
	assert.Equal(t, "Small", rep.ExpenseCategories[2].Name)

	// Records within a category also sort by amount, descending.
	entries := rep.ExpenseCategories[0].MatchedRecords
	require.Len(t, entries, 2)
	assert.Equal(t, 300.0, entries[0].Record.Amount)
	assert.Equal(t, 200.0, entries[1].Record.Amount)
}

func TestBuild_EqualAmountsKeepFirstSeenOrder(t *testing.T) {
	m := matcher(t, `{
		"First": [{"description": "first"}],
		"Second": [{"description": "second"}]
	}`)

	records := []record.Record{
		debit(0, 50, "second"),
		debit(1, 50, "first"),
	}

	rep := report.Build(records, m, nil)

	require.Len(t, rep.ExpenseCategories, 2)
	assert.Equal(t, "Second", rep.ExpenseCategories[0].Name, "tie keeps first-seen order")
	assert.Equal(t, "First", rep.ExpenseCategories[1].Name)
}

func TestBuild_UnmatchedSorted(t *testing.T) {
	m := matcher(t, `{}`)

	records := []record.Record{
		debit(0, 5, "a"),
		debit(1, 20, "b"),
		debit(2, 10, "c"),
	}

	rep := report.Build(records, m, nil)

	require.Len(t, rep.UnmatchedExpenseRecords, 3)
	assert.Equal(t, 20.0, rep.UnmatchedExpenseRecords[0].Amount)
	assert.Equal(t, 10.0, rep.UnmatchedExpenseRecords[1].Amount)
	assert.Equal(t, 5.0, rep.UnmatchedExpenseRecords[2].Amount)
}

func TestBuild_ConservesEveryRecord(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}], "Salary": [{"description": "Salaris"}]}`)

	records := []record.Record{
		debit(0, 25, "Jumbo"),
		debit(1, 12, "mystery"),
		credit(2, 2400, "Salaris"),
		credit(3, 9, "unknown"),
		debit(4, 30, "Jumbo"),
	}

	rep := report.Build(records, m, nil)

	count := len(rep.UnmatchedIncomeRecords) + len(rep.UnmatchedExpenseRecords)
	for _, cat := range rep.IncomeCategories {
		count += len(cat.MatchedRecords)
	}

	for _, cat := range rep.ExpenseCategories {
		count += len(cat.MatchedRecords)
	}

	assert.Equal(t, len(records), count)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}]}`)

	records := []record.Record{
		debit(0, 25, "Jumbo"),
		debit(1, 12, "mystery"),
	}

	before := make([]record.Record, len(records))
	copy(before, records)

	_ = report.Build(records, m, map[string]string{records[1].Hash(): "Gifts"})

	assert.Equal(t, before, records)
}

func TestBuild_Empty(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}]}`)

	rep := report.Build(nil, m, nil)

	assert.Empty(t, rep.IncomeCategories)
	assert.Empty(t, rep.ExpenseCategories)
	assert.Empty(t, rep.UnmatchedIncomeRecords)
	assert.Empty(t, rep.UnmatchedExpenseRecords)
	assert.Zero(t, rep.UnmatchedIncomeTotal)
	assert.Zero(t, rep.UnmatchedExpenseTotal)
}

func TestBuild_Deterministic(t *testing.T) {
	m := matcher(t, `{"Groceries": [{"description": "Jumbo"}]}`)

	records := []record.Record{
		debit(0, 25, "Jumbo"),
		debit(1, 12, "mystery"),
		credit(2, 9, "unknown"),
	}

	a := report.Build(records, m, nil)
	b := report.Build(records, m, nil)

	assert.Equal(t, a, b)
}
