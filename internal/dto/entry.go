package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
)

// PostEntryRequest carries the fields for creating (or re-posting) an entry.
// Amount is always the full purchase total; the posting engine derives
// per-period shares for installment plans.
type PostEntryRequest struct {
	Kind             domain.EntryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Day              int              `json:"day" binding:"required,min=1,max=31"`
	Name             string           `json:"name" binding:"required"`
	Category         string           `json:"category"`
	Amount           decimal.Decimal  `json:"amount" binding:"required"`
	Method           string           `json:"method"`
	InstallmentCount int              `json:"installmentCount" binding:"omitempty,min=1,max=36"`
}

// InstallmentResponse mirrors domain.Installment for API output.
type InstallmentResponse struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Index       int             `json:"index,omitempty"`
	Start       string          `json:"start,omitempty"`
}

// EntryResponse defines the data returned for a single entry.
type EntryResponse struct {
	EntryID     string               `json:"entryID"`
	Kind        domain.EntryKind     `json:"kind"`
	Name        string               `json:"name"`
	Amount      decimal.Decimal      `json:"amount"`
	Category    string               `json:"category,omitempty"`
	Method      string               `json:"method,omitempty"`
	Day         int                  `json:"day"`
	Role        domain.BillingRole   `json:"role"`
	Installment *InstallmentResponse `json:"installment,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// DayEntries groups one day's entries for the month listing.
type DayEntries struct {
	Day     int             `json:"day"`
	Entries []EntryResponse `json:"entries"`
}

// MonthListingResponse is the display-ordered view of one period:
// days descending, entries within a day by creation time descending.
type MonthListingResponse struct {
	Period     string       `json:"period"`
	DefaultDay int          `json:"defaultDay"`
	Days       []DayEntries `json:"days"`
}

// PostEntriesResponse returns the entries a post operation created.
type PostEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		EntryID:   e.EntryID,
		Kind:      e.Kind,
		Name:      e.Name,
		Amount:    e.Amount,
		Category:  e.Category,
		Method:    e.Method,
		Day:       e.Day,
		Role:      e.Role,
		CreatedAt: e.CreatedAt,
	}
	if e.Installment != nil {
		inst := InstallmentResponse{
			Count:       e.Installment.Count,
			TotalAmount: e.Installment.TotalAmount,
			Index:       e.Installment.Index,
		}
		if e.Installment.Index > 0 {
			inst.Start = e.Installment.Start.String()
		}
		resp.Installment = &inst
	}
	return resp
}

// ToEntryResponses converts a slice of domain.Entry to []EntryResponse.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}

// ToMonthListingResponse converts a month snapshot into its display ordering.
func ToMonthListingResponse(period domain.Period, snapshot domain.MonthSnapshot, defaultDay int) MonthListingResponse {
	days := make([]int, 0, len(snapshot))
	for day := range snapshot {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(days)))

	listing := MonthListingResponse{
		Period:     period.String(),
		DefaultDay: defaultDay,
		Days:       make([]DayEntries, 0, len(days)),
	}
	for _, day := range days {
		entries := make([]EntryResponse, 0, len(snapshot[day]))
		for id := range snapshot[day] {
			e := snapshot[day][id]
			entries = append(entries, ToEntryResponse(&e))
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
		listing.Days = append(listing.Days, DayEntries{Day: day, Entries: entries})
	}
	return listing
}
