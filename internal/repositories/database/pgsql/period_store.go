package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	"github.com/jmkang/household_ledger_app/internal/models"
	"github.com/jmkang/household_ledger_app/internal/repositories/watch"
	"github.com/jmkang/household_ledger_app/internal/utils/mapping"
)

// PgxPeriodStore is the PostgreSQL-backed period store. Change subscriptions
// are served by an in-process hub fed after committed writes; the ledger has
// one logical writer per session, so no cross-process notification is needed.
type PgxPeriodStore struct {
	BaseRepository
	hub *watch.Hub
}

// NewPeriodStore creates a new PostgreSQL period store.
func NewPeriodStore(pool *pgxpool.Pool) *PgxPeriodStore {
	return &PgxPeriodStore{
		BaseRepository: BaseRepository{Pool: pool},
		hub:            watch.NewHub(),
	}
}

// Ensure PgxPeriodStore implements portsrepo.PeriodStore
var _ portsrepo.PeriodStore = (*PgxPeriodStore)(nil)

const entryColumns = `entry_id, year, month, day, kind, name, amount, category, method, role,
	installment_count, installment_total, installment_index, installment_start_year, installment_start_month,
	created_at`

// ReadMonth retrieves the full snapshot of one period.
func (r *PgxPeriodStore) ReadMonth(ctx context.Context, period domain.Period) (domain.MonthSnapshot, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE year = $1 AND month = $2`
	rows, err := r.Pool.Query(ctx, query, period.Year, period.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for %s: %w", period, err)
	}
	defer rows.Close()

	snapshot := make(domain.MonthSnapshot)
	for rows.Next() {
		_, day, entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if snapshot[day] == nil {
			snapshot[day] = make(map[string]domain.Entry)
		}
		snapshot[day][entry.EntryID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating entries for %s: %w", period, err)
	}
	return snapshot, nil
}

// ReadAll retrieves the entire ledger history grouped by period.
func (r *PgxPeriodStore) ReadAll(ctx context.Context) (domain.LedgerSnapshot, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger history: %w", err)
	}
	defer rows.Close()

	all := make(domain.LedgerSnapshot)
	for rows.Next() {
		period, day, entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if all[period] == nil {
			all[period] = make(domain.MonthSnapshot)
		}
		if all[period][day] == nil {
			all[period][day] = make(map[string]domain.Entry)
		}
		all[period][day][entry.EntryID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating ledger history: %w", err)
	}
	return all, nil
}

// SaveEntry inserts one entry under period/day.
func (r *PgxPeriodStore) SaveEntry(ctx context.Context, period domain.Period, day int, entry domain.Entry) error {
	if err := r.insertEntry(ctx, r.Pool, period, day, entry); err != nil {
		return err
	}
	r.notify(ctx, period)
	return nil
}

// execer covers both the pool and an open transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *PgxPeriodStore) insertEntry(ctx context.Context, db execer, period domain.Period, day int, entry domain.Entry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	row := mapping.ToModelEntry(period, day, entry)
	_, err := db.Exec(ctx, query,
		row.EntryID, row.Year, row.Month, row.Day,
		row.Kind, row.Name, row.Amount, row.Category, row.Method, row.Role,
		row.InstallmentCount, row.InstallmentTotal, row.InstallmentIndex,
		row.InstallmentStartYear, row.InstallmentStartMonth,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// UpdateEntry applies the editable fields in place. Role and installment
// columns are deliberately not touched.
func (r *PgxPeriodStore) UpdateEntry(ctx context.Context, period domain.Period, day int, entryID string, fields domain.EntryFields) error {
	query := `
		UPDATE entries
		SET kind = $1, name = $2, amount = $3, category = $4, method = $5
		WHERE entry_id = $6 AND year = $7 AND month = $8 AND day = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(fields.Kind), fields.Name, fields.Amount, fields.Category, fields.Method,
		entryID, period.Year, period.Month, day,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s in %s day %02d", apperrors.ErrNotFound, entryID, period, day)
	}
	r.notify(ctx, period)
	return nil
}

// DeleteEntry removes exactly one entry.
func (r *PgxPeriodStore) DeleteEntry(ctx context.Context, period domain.Period, day int, entryID string) error {
	query := `DELETE FROM entries WHERE entry_id = $1 AND year = $2 AND month = $3 AND day = $4;`
	tag, err := r.Pool.Exec(ctx, query, entryID, period.Year, period.Month, day)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s in %s day %02d", apperrors.ErrNotFound, entryID, period, day)
	}
	r.notify(ctx, period)
	return nil
}

// WriteMany applies a batch of "dd/entryID" keyed writes to one period inside
// a single database transaction.
func (r *PgxPeriodStore) WriteMany(ctx context.Context, period domain.Period, updates map[string]*domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deleteQuery := `DELETE FROM entries WHERE entry_id = $1 AND year = $2 AND month = $3;`
	for path, entry := range updates {
		day, entryID, err := splitEntryPath(path)
		if err != nil {
			return err
		}
		if entry == nil {
			if _, err := tx.Exec(ctx, deleteQuery, entryID, period.Year, period.Month); err != nil {
				return fmt.Errorf("failed to delete entry %s in batch: %w", entryID, err)
			}
			continue
		}
		if err := r.insertEntry(ctx, tx, period, day, *entry); err != nil {
			return err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	r.notify(ctx, period)
	return nil
}

// Subscribe delivers full snapshots of the period after every committed write.
func (r *PgxPeriodStore) Subscribe(_ context.Context, period domain.Period, fn func(domain.MonthSnapshot)) (func(), error) {
	return r.hub.Subscribe(period, fn), nil
}

// notify re-reads the period and fans the snapshot out. Subscription delivery
// is best effort; a failed re-read only loses a notification, never a write.
func (r *PgxPeriodStore) notify(ctx context.Context, period domain.Period) {
	snapshot, err := r.ReadMonth(ctx, period)
	if err != nil {
		slog.Default().Warn("Failed to read period for change notification",
			slog.String("period", period.String()), slog.String("error", err.Error()))
		return
	}
	r.hub.Notify(period, snapshot)
}

// scanEntry reads one entry row along with its period and day.
func scanEntry(rows pgx.Rows) (domain.Period, int, domain.Entry, error) {
	var row models.Entry
	err := rows.Scan(
		&row.EntryID, &row.Year, &row.Month, &row.Day,
		&row.Kind, &row.Name, &row.Amount, &row.Category, &row.Method, &row.Role,
		&row.InstallmentCount, &row.InstallmentTotal, &row.InstallmentIndex,
		&row.InstallmentStartYear, &row.InstallmentStartMonth,
		&row.CreatedAt,
	)
	if err != nil {
		return domain.Period{}, 0, domain.Entry{}, fmt.Errorf("failed to scan entry row: %w", err)
	}
	period, day, entry := mapping.ToDomainEntry(row)
	return period, day, entry, nil
}

// splitEntryPath parses a "dd/entryID" batch key.
func splitEntryPath(path string) (int, string, error) {
	dayPart, entryID, ok := strings.Cut(path, "/")
	if !ok || entryID == "" {
		return 0, "", fmt.Errorf("%w: batch path must be dd/entryID, got %q", apperrors.ErrValidation, path)
	}
	day, err := strconv.Atoi(dayPart)
	if err != nil || day < 1 || day > 31 {
		return 0, "", fmt.Errorf("%w: invalid day in batch path %q", apperrors.ErrValidation, path)
	}
	return day, entryID, nil
}
