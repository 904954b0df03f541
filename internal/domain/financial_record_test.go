package domain_test

import (
	"testing"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-01", domain.MonthKey("2025-01-06"))
	assert.Equal(t, "2025-01", domain.MonthKey("2025-01-31"))
	assert.Equal(t, "2024-12", domain.MonthKey("2024-12-01"))
}

func TestMonthKeySameMonthCollides(t *testing.T) {
	// Two dates in the same month must derive the same key, so their
	// financial records collapse into one.
	assert.Equal(t, domain.MonthKey("2025-03-01"), domain.MonthKey("2025-03-28"))
	assert.NotEqual(t, domain.MonthKey("2025-03-31"), domain.MonthKey("2025-04-01"))
}

func TestMonthKeyShortInput(t *testing.T) {
	assert.Equal(t, "2025", domain.MonthKey("2025"))
	assert.Equal(t, "", domain.MonthKey(""))
}
