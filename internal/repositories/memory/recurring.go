package memory

import (
	"context"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
)

// RecurringExpenseList is a static in-memory recurring-expense list.
type RecurringExpenseList struct {
	items []domain.RecurringExpense
}

// NewRecurringExpenseList creates a list with the given items.
func NewRecurringExpenseList(items []domain.RecurringExpense) *RecurringExpenseList {
	return &RecurringExpenseList{items: append([]domain.RecurringExpense(nil), items...)}
}

// Ensure RecurringExpenseList implements portsrepo.RecurringExpenseReader
var _ portsrepo.RecurringExpenseReader = (*RecurringExpenseList)(nil)

// ListActive returns the active items in list order.
func (l *RecurringExpenseList) ListActive(_ context.Context) ([]domain.RecurringExpense, error) {
	active := make([]domain.RecurringExpense, 0, len(l.items))
	for _, item := range l.items {
		if item.Active {
			active = append(active, item)
		}
	}
	return active, nil
}
