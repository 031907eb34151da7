package record

import (
	"strconv"
	"time"
)

// Type represents the direction of a statement record.
type Type string

const (
	TypeCredit Type = "Credit"
	TypeDebit  Type = "Debit"
)

// Record is one bank-statement line in canonical form. The amount is always
// non-negative; direction is carried by Type. ID is assigned at ingestion,
// unique within a batch, and not part of the record's identity hash.
type Record struct {
	ID               int       `json:"id"`
	Date             time.Time `json:"date"`
	AccountIBAN      string    `json:"accountIBAN"`
	Amount           float64   `json:"amount"`
	Type             Type      `json:"type"`
	Name             string    `json:"name"`
	CounterpartyIBAN string    `json:"IBAN"`
	MutationCode     string    `json:"mutationCode"`
	Description      string    `json:"description"`
}

// DateLayout is the day-precision format bank exports use and rule patterns
// are matched against.
const DateLayout = "02-01-2006"

// Fields lists the matchable record fields in statement column order.
var Fields = []string{
	"date",
	"accountIBAN",
	"amount",
	"type",
	"name",
	"IBAN",
	"mutationCode",
	"description",
}

// Field returns the record field with the given name, stringified the way
// rule patterns see it. Unknown field names return the empty string.
func (r Record) Field(name string) string {
	switch name {
	case "date":
		return r.Date.Format(DateLayout)
	case "accountIBAN":
		return r.AccountIBAN
	case "amount":
		return strconv.FormatFloat(r.Amount, 'f', -1, 64)
	case "type":
		return string(r.Type)
	case "name":
		return r.Name
	case "IBAN":
		return r.CounterpartyIBAN
	case "mutationCode":
		return r.MutationCode
	case "description":
		return r.Description
	}

	return ""
}
