package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRecord holds the company-level figures for one calendar month.
// The month is the identity: any periodStart inside the same month writes
// the same record.
type FinancialRecord struct {
	ID               int64           `json:"id"`
	MonthKey         string          `json:"monthKey"`
	PeriodStart      string          `json:"periodStart"`
	PeriodEnd        string          `json:"periodEnd"`
	Revenue          decimal.Decimal `json:"revenue"`
	RecurringRevenue decimal.Decimal `json:"recurringRevenue"`
	NewBookings      decimal.Decimal `json:"newBookings"`
	ChurnedRevenue   decimal.Decimal `json:"churnedRevenue"`
	GrossMargin      decimal.Decimal `json:"grossMargin"`
	OperatingCosts   decimal.Decimal `json:"operatingCosts"`
	CashBalance      decimal.Decimal `json:"cashBalance"`
	Headcount        decimal.Decimal `json:"headcount"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	UpdatedBy        string          `json:"updatedBy"`
	Version          int32           `json:"-"`
}

// MonthKey truncates an ISO date (YYYY-MM-DD) to its calendar month (YYYY-MM).
// Financial data is tracked at month granularity regardless of the exact day
// supplied, so all dates in a month derive the same key.
func MonthKey(periodStart string) string {
	if len(periodStart) < 7 {
		return periodStart
	}
	return periodStart[:7]
}
