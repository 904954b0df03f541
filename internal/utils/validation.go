package utils

import (
	"fmt"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/catalog"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
)

// ValidatePeriodStart checks that a submission period start is a real date
// aligned with its period type: weekly periods start on a Monday, monthly
// periods on the first of the month.
func ValidatePeriodStart(periodType domain.PeriodType, periodStart string) error {
	date, err := time.Parse("2006-01-02", periodStart)
	if err != nil {
		return fmt.Errorf("periodStart must be a date in YYYY-MM-DD format")
	}

	switch periodType {
	case domain.PeriodWeekly:
		if date.Weekday() != time.Monday {
			return fmt.Errorf("weekly periods must start on a Monday")
		}
	case domain.PeriodMonthly:
		if date.Day() != 1 {
			return fmt.Errorf("monthly periods must start on the first of the month")
		}
	default:
		return fmt.Errorf("unknown period type %q", periodType)
	}

	return nil
}

// ValidateProducts checks that every id refers to a catalog product.
func ValidateProducts(ids []string) error {
	for _, id := range ids {
		if _, ok := catalog.Get(id); !ok {
			return fmt.Errorf("unknown product %q", id)
		}
	}
	return nil
}
