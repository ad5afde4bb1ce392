package mirror

import (
	"context"

	"github.com/pranithapadala/FinWell/internal/core"
)

// RowMirror is the outbound port for the spreadsheet mirror of the ledger.
type RowMirror interface {
	// Append adds one transaction row to the mirror.
	Append(ctx context.Context, tx core.Transaction) error
	// Remove deletes the mirrored row for the given transaction id. A row
	// that is already gone is not an error.
	Remove(ctx context.Context, id string) error
}
