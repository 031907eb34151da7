// Package report turns a batch of statement records into a categorized
// report. Both the matcher and the builder are pure: given the same records,
// configuration and exception map the resulting report is identical down to
// ordering, and the input slice is never modified.
package report

import (
	"sort"

	"github.com/mvisser/banknote/internal/record"
	"github.com/mvisser/banknote/internal/rules"
)

// Entry pairs a matched record with its category provenance: true when the
// category came from a manual exception override rather than a rule.
type Entry struct {
	Record      record.Record `json:"record"`
	IsException bool          `json:"isException"`
}

// Category is a named aggregate of matched records. Categories that matched
// no records in the window do not appear in the report at all.
type Category struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	MatchedRecords []Entry `json:"matchedRecords"`
}

// Report is the sole output of the engine. It is rebuilt from scratch on
// every evaluation; consumers treat it as a read-only snapshot.
type Report struct {
	IncomeCategories        []Category      `json:"incomeCategories"`
	ExpenseCategories       []Category      `json:"expenseCategories"`
	UnmatchedIncomeRecords  []record.Record `json:"unmatchedIncomeRecords"`
	UnmatchedExpenseRecords []record.Record `json:"unmatchedExpenseRecords"`
	UnmatchedIncomeTotal    float64         `json:"unmatchedIncomeTotal"`
	UnmatchedExpenseTotal   float64         `json:"unmatchedExpenseTotal"`
}

// Build categorizes records and aggregates them into a report. Resolution
// per record: an exception-map entry for the record's hash wins outright,
// otherwise the rule matcher decides, otherwise the record lands in the
// type-appropriate unmatched list. Credit records go to the income side,
// everything else to the expense side.
//
// All result collections are sorted descending by amount with a stable
// tie-break, so equal amounts keep their first-seen order.
func Build(records []record.Record, matcher *rules.Matcher, exceptions map[string]string) Report {
	var rep Report

	for _, rec := range records {
		var (
			name        string
			isException bool
		)

		if override, ok := exceptions[rec.Hash()]; ok {
			name = override
			isException = true
		} else if matched, ok := matcher.Match(rec); ok {
			name = matched
		}

		income := rec.Type == record.TypeCredit

		if name == "" {
			if income {
				rep.UnmatchedIncomeRecords = append(rep.UnmatchedIncomeRecords, rec)
				rep.UnmatchedIncomeTotal += rec.Amount
			} else {
				rep.UnmatchedExpenseRecords = append(rep.UnmatchedExpenseRecords, rec)
				rep.UnmatchedExpenseTotal += rec.Amount
			}

			continue
		}

		entry := Entry{Record: rec, IsException: isException}

		if income {
			rep.IncomeCategories = addToCategory(rep.IncomeCategories, name, entry)
		} else {
			rep.ExpenseCategories = addToCategory(rep.ExpenseCategories, name, entry)
		}
	}

	sortCategories(rep.IncomeCategories)
	sortCategories(rep.ExpenseCategories)
	sortRecords(rep.UnmatchedIncomeRecords)
	sortRecords(rep.UnmatchedExpenseRecords)

	return rep
}

// addToCategory folds an entry into the named category, creating it on first
// encounter. Creation order is preserved until the final sort, which is what
// gives equal-amount categories their first-seen tie-break.
func addToCategory(categories []Category, name string, entry Entry) []Category {
	for i := range categories {
		if categories[i].Name == name {
			categories[i].Amount += entry.Record.Amount
			categories[i].MatchedRecords = append(categories[i].MatchedRecords, entry)

			return categories
		}
	}

	return append(categories, Category{
		Name:           name,
		Amount:         entry.Record.Amount,
		MatchedRecords: []Entry{entry},
	})
}

func sortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Amount > categories[j].Amount
	})

	for i := range categories {
		entries := categories[i].MatchedRecords
		sort.SliceStable(entries, func(a, b int) bool {
			return entries[a].Record.Amount > entries[b].Record.Amount
		})
	}
}

func sortRecords(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Amount > records[j].Amount
	})
}
