package utils_test

import (
	"testing"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/pulseboard-dev/pulseboard/backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestValidatePeriodStartWeekly(t *testing.T) {
	// 2025-01-06 is a Monday
	assert.NoError(t, utils.ValidatePeriodStart(domain.PeriodWeekly, "2025-01-06"))
	assert.Error(t, utils.ValidatePeriodStart(domain.PeriodWeekly, "2025-01-07"))
}

func TestValidatePeriodStartMonthly(t *testing.T) {
	assert.NoError(t, utils.ValidatePeriodStart(domain.PeriodMonthly, "2025-02-01"))
	assert.Error(t, utils.ValidatePeriodStart(domain.PeriodMonthly, "2025-02-15"))
}

func TestValidatePeriodStartMalformed(t *testing.T) {
	assert.Error(t, utils.ValidatePeriodStart(domain.PeriodWeekly, "06/01/2025"))
	assert.Error(t, utils.ValidatePeriodStart(domain.PeriodWeekly, ""))
	assert.Error(t, utils.ValidatePeriodStart(domain.PeriodType("daily"), "2025-01-06"))
}

func TestValidateProducts(t *testing.T) {
	assert.NoError(t, utils.ValidateProducts([]string{"sams", "stigviewer"}))
	assert.NoError(t, utils.ValidateProducts(nil))
	assert.Error(t, utils.ValidateProducts([]string{"sams", "made-up"}))
}
