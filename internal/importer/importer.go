package importer

import (
	"io"

	"github.com/mvisser/banknote/internal/record"
)

type Bank string

const (
	BankING Bank = "ing"
)

// Importer parses one bank's CSV export into canonical records. Record ids
// are assigned sequentially in row order, starting at zero.
type Importer interface {
	Parse(r io.Reader) ([]record.Record, error)
}
