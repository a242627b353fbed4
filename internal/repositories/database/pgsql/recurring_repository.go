package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	"github.com/jmkang/household_ledger_app/internal/models"
	"github.com/jmkang/household_ledger_app/internal/utils/mapping"
)

// PgxRecurringExpenseRepository reads the externally managed recurring-expense
// list from PostgreSQL. The ledger never writes it.
type PgxRecurringExpenseRepository struct {
	BaseRepository
}

// NewRecurringExpenseRepository creates a new recurring-expense reader.
func NewRecurringExpenseRepository(pool *pgxpool.Pool) *PgxRecurringExpenseRepository {
	return &PgxRecurringExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRecurringExpenseRepository implements portsrepo.RecurringExpenseReader
var _ portsrepo.RecurringExpenseReader = (*PgxRecurringExpenseRepository)(nil)

// ListActive returns the active recurring expenses in list order.
func (r *PgxRecurringExpenseRepository) ListActive(ctx context.Context) ([]domain.RecurringExpense, error) {
	query := `
		SELECT recurring_id, name, amount, category, memo, active, position
		FROM recurring_expenses
		WHERE active
		ORDER BY position, name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring expenses: %w", err)
	}
	defer rows.Close()

	var list []domain.RecurringExpense
	for rows.Next() {
		var row models.RecurringExpense
		if err := rows.Scan(&row.RecurringID, &row.Name, &row.Amount, &row.Category, &row.Memo, &row.Active, &row.Position); err != nil {
			return nil, fmt.Errorf("failed to scan recurring expense row: %w", err)
		}
		list = append(list, mapping.ToDomainRecurringExpense(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating recurring expenses: %w", err)
	}
	return list, nil
}
