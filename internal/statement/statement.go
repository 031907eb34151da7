package statement

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvisser/banknote/internal/record"
)

// Batch is one imported statement file. Record ids inside a batch are the
// sequential ingestion ids; they are not stable across re-imports, which is
// why exceptions key on the record hash instead.
type Batch struct {
	ID        uuid.UUID
	Filename  string
	Records   []record.Record
	CreatedAt time.Time
}

// BatchInfo is the listing view of a batch, without its records.
type BatchInfo struct {
	ID          uuid.UUID
	Filename    string
	RecordCount int
	CreatedAt   time.Time
}
