package domain

import (
	"fmt"
	"time"
)

// Period addresses one calendar month of the ledger.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
}

// AddMonths returns the period offset months away, rolling the year as needed.
// Negative offsets walk backwards.
func (p Period) AddMonths(offset int) Period {
	y, m := p.Year, p.Month+offset
	for m > 12 {
		m -= 12
		y++
	}
	for m < 1 {
		m += 12
		y--
	}
	return Period{Year: y, Month: m}
}

// Before reports whether p is strictly earlier than o.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String formats the period as "YYYY-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// EffectiveDay returns the default entry day for t. Before 06:00 the previous
// calendar day is still considered "today" so late-night entries land on the
// day they belong to.
func EffectiveDay(t time.Time) int {
	if t.Hour() < 6 {
		t = t.AddDate(0, 0, -1)
	}
	return t.Day()
}
