package domain

import "github.com/shopspring/decimal"

// RecurringExpense is an item of the externally managed recurring-expense list.
// The ledger only reads it; list CRUD lives outside the core.
type RecurringExpense struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category,omitempty"`
	Memo     string          `json:"memo,omitempty"` // carried into the entry's method field
	Active   bool            `json:"active"`
}
