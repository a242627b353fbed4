package models

import "github.com/shopspring/decimal"

// RecurringExpense is the persistence representation of one recurring-expense
// list row. Position carries the externally managed list order.
type RecurringExpense struct {
	RecurringID string
	Name        string
	Amount      decimal.Decimal
	Category    string
	Memo        string
	Active      bool
	Position    int
}
