package repositories

import (
	"context"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
)

// PeriodReader defines read operations against the period store.
type PeriodReader interface {
	// ReadMonth retrieves the full snapshot of one period. A period with no
	// entries yields an empty (non-nil) snapshot, not an error.
	ReadMonth(ctx context.Context, period domain.Period) (domain.MonthSnapshot, error)

	// ReadAll retrieves the entire ledger history. Used by carryover
	// computation only.
	ReadAll(ctx context.Context) (domain.LedgerSnapshot, error)
}

// PeriodWriter defines write operations against the period store.
type PeriodWriter interface {
	// SaveEntry persists a single entry under period/day. The entry arrives
	// with a freshly generated unique id.
	SaveEntry(ctx context.Context, period domain.Period, day int, entry domain.Entry) error

	// UpdateEntry applies the editable fields to an existing entry in place,
	// leaving role and installment metadata untouched.
	UpdateEntry(ctx context.Context, period domain.Period, day int, entryID string, fields domain.EntryFields) error

	// DeleteEntry removes exactly one entry. It never cascades.
	DeleteEntry(ctx context.Context, period domain.Period, day int, entryID string) error

	// WriteMany applies a batch of writes to one period in a single store
	// operation. Keys are "dd/entryID" paths; a nil value deletes the entry.
	WriteMany(ctx context.Context, period domain.Period, updates map[string]*domain.Entry) error
}

// PeriodWatcher delivers full-period snapshots after every committed change.
// Snapshots are authoritative; subscribers recompute from them rather than
// merging deltas.
type PeriodWatcher interface {
	// Subscribe registers fn for change notifications on one period and
	// returns the matching unsubscribe function.
	Subscribe(ctx context.Context, period domain.Period, fn func(domain.MonthSnapshot)) (func(), error)
}

// PeriodStore combines all period store interfaces.
// This is a facade for clients that need access to all operations.
type PeriodStore interface {
	PeriodReader
	PeriodWriter
	PeriodWatcher
}
