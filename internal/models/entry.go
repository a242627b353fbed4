package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the persistence representation of one ledger entry row.
// Installment columns are nullable; they are only set for plan members and,
// without index/start, for the reference annotation of an installment
// purchase.
type Entry struct {
	EntryID               string
	Year                  int
	Month                 int
	Day                   int
	Kind                  string
	Name                  string
	Amount                decimal.Decimal
	Category              string
	Method                string
	Role                  string
	InstallmentCount      *int
	InstallmentTotal      *decimal.Decimal
	InstallmentIndex      *int
	InstallmentStartYear  *int
	InstallmentStartMonth *int
	CreatedAt             time.Time
}
