package repository

import (
	"context"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
)

// UpsertFinancialRecord buckets by calendar month: the month key is derived
// from periodStart before the write, and a second write in the same month
// replaces every field while keeping the record id.
func (r *Repository) UpsertFinancialRecord(record *domain.FinancialRecord) error {
	record.MonthKey = domain.MonthKey(record.PeriodStart)

	query := `
		INSERT INTO financial_records (
			month_key, period_start, period_end,
			revenue, recurring_revenue, new_bookings, churned_revenue,
			gross_margin, operating_costs, cash_balance, headcount,
			updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (month_key) DO UPDATE
		SET
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			revenue = EXCLUDED.revenue,
			recurring_revenue = EXCLUDED.recurring_revenue,
			new_bookings = EXCLUDED.new_bookings,
			churned_revenue = EXCLUDED.churned_revenue,
			gross_margin = EXCLUDED.gross_margin,
			operating_costs = EXCLUDED.operating_costs,
			cash_balance = EXCLUDED.cash_balance,
			headcount = EXCLUDED.headcount,
			updated_by = EXCLUDED.updated_by,
			updated_at = now(),
			version = financial_records.version + 1
		RETURNING id, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		record.MonthKey, record.PeriodStart, record.PeriodEnd,
		record.Revenue, record.RecurringRevenue, record.NewBookings, record.ChurnedRevenue,
		record.GrossMargin, record.OperatingCosts, record.CashBalance, record.Headcount,
		record.UpdatedBy,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.UpdatedAt, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetFinancialRecordByMonth(monthKey string) (*domain.FinancialRecord, error) {
	query := `
		SELECT id, period_start, period_end,
			revenue, recurring_revenue, new_bookings, churned_revenue,
			gross_margin, operating_costs, cash_balance, headcount,
			updated_at, updated_by, version
		FROM financial_records
		WHERE month_key = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	record := &domain.FinancialRecord{
		MonthKey: monthKey,
	}

	var start, end time.Time
	dst := []any{
		&record.ID, &start, &end,
		&record.Revenue, &record.RecurringRevenue, &record.NewBookings, &record.ChurnedRevenue,
		&record.GrossMargin, &record.OperatingCosts, &record.CashBalance, &record.Headcount,
		&record.UpdatedAt, &record.UpdatedBy, &record.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, monthKey).Scan(dst...); err != nil {
		return nil, err
	}
	record.PeriodStart = start.Format("2006-01-02")
	record.PeriodEnd = end.Format("2006-01-02")

	return record, nil
}

// GetAllFinancialRecords returns every month record, most recent period first.
func (r *Repository) GetAllFinancialRecords() ([]*domain.FinancialRecord, error) {
	query := `
		SELECT id, month_key, period_start, period_end,
			revenue, recurring_revenue, new_bookings, churned_revenue,
			gross_margin, operating_costs, cash_balance, headcount,
			updated_at, updated_by, version
		FROM financial_records
		ORDER BY period_start DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.FinancialRecord, 0)
	for rows.Next() {
		record := &domain.FinancialRecord{}
		var start, end time.Time

		dst := []any{
			&record.ID, &record.MonthKey, &start, &end,
			&record.Revenue, &record.RecurringRevenue, &record.NewBookings, &record.ChurnedRevenue,
			&record.GrossMargin, &record.OperatingCosts, &record.CashBalance, &record.Headcount,
			&record.UpdatedAt, &record.UpdatedBy, &record.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		record.PeriodStart = start.Format("2006-01-02")
		record.PeriodEnd = end.Format("2006-01-02")

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
