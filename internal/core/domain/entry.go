package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind indicates whether an entry adds money to or draws money from the ledger.
type EntryKind string

const (
	Income  EntryKind = "INCOME"
	Expense EntryKind = "EXPENSE"
)

// BillingRole describes how an entry participates in period aggregation.
// Exactly one role holds for an entry at a time; illegal flag combinations
// are unrepresentable.
type BillingRole string

const (
	// RolePlain is an ordinary entry posted to its origination day.
	RolePlain BillingRole = "PLAIN"
	// RoleCardReference is a display-only annotation left on a card purchase's
	// origination day. It is excluded from every aggregate and always carries
	// the full purchase (or installment plan) total.
	RoleCardReference BillingRole = "CARD_REFERENCE"
	// RoleCardDeferred is the entry that actually bills in a future period as
	// a result of a card payment.
	RoleCardDeferred BillingRole = "CARD_DEFERRED"
	// RoleFixedExpense is an entry materialized from the recurring-expense
	// list. It counts in a dedicated "fixed" bucket, never in plain expense.
	RoleFixedExpense BillingRole = "FIXED_EXPENSE"
)

// Installment records an entry's membership in an installment plan.
// Amount on the entry itself is the per-period share, not the purchase total.
type Installment struct {
	Count       int             `json:"count"`       // number of per-period shares, >= 2
	TotalAmount decimal.Decimal `json:"totalAmount"` // original purchase total
	Index       int             `json:"index"`       // 1-based position in the plan; 0 on reference entries
	Start       Period          `json:"start"`       // period the purchase originated in
}

// Entry is the atomic ledger record.
type Entry struct {
	EntryID     string          `json:"entryID"`
	Kind        EntryKind       `json:"kind"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"` // free-text tag, membership not validated
	Method      string          `json:"method,omitempty"`   // payment method label
	Day         int             `json:"day"`                // day within the posted period
	Role        BillingRole     `json:"role"`
	Installment *Installment    `json:"installment,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"` // same-day display ordering only
}

// CountsTowardTotals reports whether the entry participates in aggregates.
// Card reference annotations never do.
func (e Entry) CountsTowardTotals() bool {
	return e.Role != RoleCardReference
}

// IsInstallment reports whether the entry belongs to a multi-period plan.
func (e Entry) IsInstallment() bool {
	return e.Installment != nil && e.Installment.Count > 1
}

// EntryFields is the editable subset of an entry, applied by in-place updates.
// Role and installment metadata are deliberately not part of it.
type EntryFields struct {
	Kind     EntryKind
	Name     string
	Amount   decimal.Decimal
	Category string
	Method   string
}

// MonthSnapshot is the full set of entries visible in one period,
// keyed day -> entry id -> entry.
type MonthSnapshot map[int]map[string]Entry

// LedgerSnapshot is the entire ledger history keyed by period.
type LedgerSnapshot map[Period]MonthSnapshot
