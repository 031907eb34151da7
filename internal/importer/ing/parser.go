package ing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/mvisser/banknote/internal/encoding"
	"github.com/mvisser/banknote/internal/record"
)

// Column layout of the headerless ING statement export, in file order.
const (
	colDate = iota
	colAccountIBAN
	colAmount
	colType
	colName
	colIBAN
	colMutationCode
	colDescription

	columnCount
)

// Parser reads headerless ING bank CSV exports and produces canonical
// records. Rows whose first cell is not a date (stray headers, footers,
// blank lines) are skipped.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]record.Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	var records []record.Record

	for i, row := range rows {
		rowNum := i + 1

		date, ok := parseDate(row)
		if !ok {
			continue
		}

		if len(row) < columnCount {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", rowNum, columnCount, len(row))
		}

		amount, err := parseAmount(cell(row, colAmount))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q: %w", rowNum, cell(row, colAmount), err)
		}

		typ, err := parseType(cell(row, colType))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		records = append(records, record.Record{
			ID:               len(records),
			Date:             date,
			AccountIBAN:      cell(row, colAccountIBAN),
			Amount:           amount,
			Type:             typ,
			Name:             cell(row, colName),
			CounterpartyIBAN: cell(row, colIBAN),
			MutationCode:     cell(row, colMutationCode),
			Description:      cell(row, colDescription),
		})
	}

	return records, nil
}

func parseDate(row []string) (time.Time, bool) {
	s := cell(row, colDate)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(record.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseAmount parses a European-formatted amount ("1.234,56") into its
// absolute value. Direction lives in the type column, not the sign.
func parseAmount(s string) (float64, error) {
	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Abs().InexactFloat64(), nil
}

// parseType maps the export's direction column. Older ING exports write
// "Debet", newer ones "Debit"; both map to the canonical debit type.
func parseType(s string) (record.Type, error) {
	switch s {
	case "Credit":
		return record.TypeCredit, nil
	case "Debet", "Debit":
		return record.TypeDebit, nil
	}

	return "", fmt.Errorf("unknown transaction type %q", s)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
