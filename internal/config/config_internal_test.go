package config

import (
	"errors"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
)

func TestFirstError(t *testing.T) {
	missing := errors.New(`required environment variable "DATABASE_DSN" is not set`)
	agg := env.AggregateError{Errors: []error{missing, errors.New("second")}}
	assert.Equal(t, missing, firstError(agg))

	// non-aggregate errors must not be swallowed
	plain := errors.New("expected a pointer to a Struct")
	assert.Equal(t, plain, firstError(plain))
}
