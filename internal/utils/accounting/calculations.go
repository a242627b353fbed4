package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
)

// SignedAmount returns the entry's contribution to a running balance:
// income adds, every expense shape (plain, deferred, fixed) subtracts, and
// reference annotations contribute nothing. Carryover and summary math share
// this convention so the two can never disagree on an entry's sign.
func SignedAmount(e domain.Entry) decimal.Decimal {
	if !e.CountsTowardTotals() {
		return decimal.Zero
	}
	if e.Role != domain.RoleFixedExpense && e.Kind == domain.Income {
		return e.Amount
	}
	return e.Amount.Neg()
}

// InstallmentShare returns the per-period share of an installment plan.
// Every share uses the same half-up rounding at the minor unit; the cumulative
// drift from the plan total is bounded by count-1 minor units and is not
// corrected on the terminal share.
func InstallmentShare(total decimal.Decimal, count int) decimal.Decimal {
	if count < 1 {
		return total
	}
	return total.DivRound(decimal.NewFromInt(int64(count)), 0)
}
