package repositories

import (
	"context"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
)

// RecurringExpenseReader exposes the externally managed recurring-expense
// list. The collaborator is optional and resolved once at startup; a ledger
// without one simply cannot apply fixed expenses.
type RecurringExpenseReader interface {
	// ListActive returns the active recurring expenses in list order.
	ListActive(ctx context.Context) ([]domain.RecurringExpense, error)
}
