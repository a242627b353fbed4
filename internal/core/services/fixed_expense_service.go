package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/middleware"
)

var ErrNoRecurringExpenses = errors.New("no active recurring expenses to apply")

// fixedExpenseService materializes the recurring-expense list into a period.
// The recurring collaborator is optional; it is resolved once at construction
// and a nil reader reports unavailability instead of failing fuzzily later.
type fixedExpenseService struct {
	store     portsrepo.PeriodStore
	recurring portsrepo.RecurringExpenseReader // may be nil
}

// NewFixedExpenseService creates a new FixedExpenseService. recurring may be
// nil when the deployment has no recurring-expense list.
func NewFixedExpenseService(store portsrepo.PeriodStore, recurring portsrepo.RecurringExpenseReader) portssvc.FixedExpenseSvcFacade {
	return &fixedExpenseService{
		store:     store,
		recurring: recurring,
	}
}

// Ensure fixedExpenseService implements the portssvc.FixedExpenseSvcFacade interface
var _ portssvc.FixedExpenseSvcFacade = (*fixedExpenseService)(nil)

// ApplyFixed applies the resolved recurring list to the period.
// Implements portssvc.FixedExpenseSvcFacade
func (s *fixedExpenseService) ApplyFixed(ctx context.Context, period domain.Period) (int, error) {
	if s.recurring == nil {
		return 0, fmt.Errorf("%w: no recurring expense list configured", apperrors.ErrUnavailable)
	}
	list, err := s.recurring.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurring expenses: %w", err)
	}
	return s.ApplyFixedList(ctx, period, list)
}

// ApplyFixedList replaces the period's fixed entries with one entry per
// active list item, dated day 1. The delete of the old entries and the write
// of the new ones go through a single batch, so repeated application leaves
// exactly len(list) fixed entries behind.
// Implements portssvc.FixedExpenseSvcFacade
func (s *fixedExpenseService) ApplyFixedList(ctx context.Context, period domain.Period, list []domain.RecurringExpense) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.store == nil {
		return 0, apperrors.ErrUnavailable
	}

	active := make([]domain.RecurringExpense, 0, len(list))
	for _, rec := range list {
		if rec.Active {
			active = append(active, rec)
		}
	}
	if len(active) == 0 {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoRecurringExpenses)
	}

	snapshot, err := s.store.ReadMonth(ctx, period)
	if err != nil {
		return 0, fmt.Errorf("failed to read period %s: %w", period, err)
	}

	updates := make(map[string]*domain.Entry)
	for day, dayEntries := range snapshot {
		for id, e := range dayEntries {
			if e.Role == domain.RoleFixedExpense {
				updates[entryPath(day, id)] = nil
			}
		}
	}

	now := time.Now().UTC()
	for _, rec := range active {
		entry := domain.Entry{
			EntryID:   uuid.NewString(),
			Kind:      domain.Expense,
			Name:      rec.Name,
			Amount:    rec.Amount,
			Category:  rec.Category,
			Method:    rec.Memo,
			Day:       1,
			Role:      domain.RoleFixedExpense,
			CreatedAt: now,
		}
		updates[entryPath(1, entry.EntryID)] = &entry
	}

	if err := s.store.WriteMany(ctx, period, updates); err != nil {
		return 0, fmt.Errorf("failed to apply fixed expenses to %s: %w", period, err)
	}

	logger.Info("Fixed expenses applied",
		slog.String("period", period.String()),
		slog.Int("applied", len(active)))
	return len(active), nil
}

// entryPath builds the "dd/entryID" key used by batch writes.
func entryPath(day int, entryID string) string {
	return fmt.Sprintf("%02d/%s", day, entryID)
}
