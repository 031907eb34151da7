package view

import (
	"context"
	"fmt"
	"time"

	"github.com/mvisser/banknote/internal/record"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatDate renders a date the way the bank export writes it.
func FormatDate(t time.Time) string {
	return t.Format(record.DateLayout)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
