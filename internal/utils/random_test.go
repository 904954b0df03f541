package utils_test

import (
	"testing"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/pulseboard-dev/pulseboard/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, utils.GenerateRandomPassword(12), 12)
	assert.Len(t, utils.GenerateRandomPassword(0), 0)
}

func TestGenerateSessionID(t *testing.T) {
	id := utils.GenerateSessionID(32)
	assert.Len(t, id, 32)
	for _, r := range id {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, alnum, "session id must be cookie-safe, got %q", r)
	}

	// not a uniqueness proof, just a sanity check against a constant generator
	assert.NotEqual(t, utils.GenerateSessionID(32), utils.GenerateSessionID(32))
}

func TestGenerateRandomOperator(t *testing.T) {
	user, err := utils.GenerateRandomOperator("secret1", "pulseboard.dev")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleOperator, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.Contains(t, user.Email, "@pulseboard.dev")
	require.Len(t, user.Products, 1)
	assert.NoError(t, utils.ValidateProducts(user.Products))
}
