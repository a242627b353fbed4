package mapping

import (
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	"github.com/jmkang/household_ledger_app/internal/models"
)

// ToModelEntry converts a domain Entry plus its address to a model Entry
func ToModelEntry(period domain.Period, day int, d domain.Entry) models.Entry {
	m := models.Entry{
		EntryID:   d.EntryID,
		Year:      period.Year,
		Month:     period.Month,
		Day:       day,
		Kind:      string(d.Kind),
		Name:      d.Name,
		Amount:    d.Amount,
		Category:  d.Category,
		Method:    d.Method,
		Role:      string(d.Role),
		CreatedAt: d.CreatedAt,
	}
	if d.Installment != nil {
		inst := *d.Installment
		m.InstallmentCount = &inst.Count
		m.InstallmentTotal = &inst.TotalAmount
		if inst.Index > 0 {
			m.InstallmentIndex = &inst.Index
			m.InstallmentStartYear = &inst.Start.Year
			m.InstallmentStartMonth = &inst.Start.Month
		}
	}
	return m
}

// ToDomainEntry converts a model Entry to its period, day and domain Entry
func ToDomainEntry(m models.Entry) (domain.Period, int, domain.Entry) {
	d := domain.Entry{
		EntryID:   m.EntryID,
		Kind:      domain.EntryKind(m.Kind),
		Name:      m.Name,
		Amount:    m.Amount,
		Category:  m.Category,
		Method:    m.Method,
		Day:       m.Day,
		Role:      domain.BillingRole(m.Role),
		CreatedAt: m.CreatedAt,
	}
	if m.InstallmentCount != nil && m.InstallmentTotal != nil {
		inst := &domain.Installment{Count: *m.InstallmentCount, TotalAmount: *m.InstallmentTotal}
		if m.InstallmentIndex != nil {
			inst.Index = *m.InstallmentIndex
		}
		if m.InstallmentStartYear != nil && m.InstallmentStartMonth != nil {
			inst.Start = domain.Period{Year: *m.InstallmentStartYear, Month: *m.InstallmentStartMonth}
		}
		d.Installment = inst
	}
	return domain.Period{Year: m.Year, Month: m.Month}, m.Day, d
}

// ToDomainRecurringExpense converts a model RecurringExpense to a domain RecurringExpense
func ToDomainRecurringExpense(m models.RecurringExpense) domain.RecurringExpense {
	return domain.RecurringExpense{
		Name:     m.Name,
		Amount:   m.Amount,
		Category: m.Category,
		Memo:     m.Memo,
		Active:   m.Active,
	}
}
