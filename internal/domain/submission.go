package domain

import (
	"time"
)

type PeriodType string

const (
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// Submission is one KPI value for a (product, field, period start) slot.
// Writes to the same slot overwrite the previous value but keep the row id,
// so every slot has at most one live record.
type Submission struct {
	ID          int64      `json:"id"`
	ProductID   string     `json:"productId"`
	FieldName   string     `json:"fieldName"`
	Value       string     `json:"value"`
	UserEmail   string     `json:"userEmail"`
	PeriodType  PeriodType `json:"periodType"`
	PeriodStart string     `json:"periodStart"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int32      `json:"-"`
}
