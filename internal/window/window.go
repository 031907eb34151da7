// Package window selects the evaluation window of a statement batch: a
// calendar month, or a payday-to-payday slice of it.
package window

import (
	"fmt"
	"time"

	"github.com/mvisser/banknote/internal/record"
)

// Payday is the day of month salaries land. A payday-to-payday window for
// month M runs from the 26th of the previous month up to (excluding) the
// 26th of M.
const Payday = 26

// monthLayout is the key format months are addressed by, e.g. "03-2024".
const monthLayout = "01-2006"

// Key returns the month key a date belongs to.
func Key(t time.Time) string {
	return t.Format(monthLayout)
}

// Months returns the unique month keys present in the batch, in first-seen
// order.
func Months(records []record.Record) []string {
	seen := make(map[string]struct{})

	var months []string

	for _, rec := range records {
		key := Key(rec.Date)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		months = append(months, key)
	}

	return months
}

// Filter returns the records falling inside the selected month. With
// paydayToPayday the window shifts to [payday of previous month, payday of
// the selected month).
func Filter(records []record.Record, month string, paydayToPayday bool) ([]record.Record, error) {
	if !paydayToPayday {
		var out []record.Record

		for _, rec := range records {
			if Key(rec.Date) == month {
				out = append(out, rec)
			}
		}

		return out, nil
	}

	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	end := time.Date(t.Year(), t.Month(), Payday, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -1, 0)

	var out []record.Record

	for _, rec := range records {
		if !rec.Date.Before(start) && rec.Date.Before(end) {
			out = append(out, rec)
		}
	}

	return out, nil
}
