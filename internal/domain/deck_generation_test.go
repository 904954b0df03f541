package domain_test

import (
	"testing"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    domain.GenerationStatus
		to      domain.GenerationStatus
		allowed bool
	}{
		{domain.GenerationPending, domain.GenerationInProgress, true},
		{domain.GenerationPending, domain.GenerationCompleted, true},
		{domain.GenerationPending, domain.GenerationFailed, true},
		{domain.GenerationInProgress, domain.GenerationCompleted, true},
		{domain.GenerationInProgress, domain.GenerationFailed, true},
		{domain.GenerationInProgress, domain.GenerationPending, false},
		{domain.GenerationCompleted, domain.GenerationFailed, false},
		{domain.GenerationCompleted, domain.GenerationInProgress, false},
		{domain.GenerationFailed, domain.GenerationCompleted, false},
		{domain.GenerationPending, domain.GenerationPending, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, domain.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}
