package catalog_test

import (
	"testing"

	"github.com/pulseboard-dev/pulseboard/backend/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	p, ok := catalog.Get("stigviewer")
	require.True(t, ok)
	assert.Equal(t, "STIG Viewer", p.Name)
	assert.NotEmpty(t, p.Fields)

	_, ok = catalog.Get("no-such-product")
	assert.False(t, ok)
}

func TestAllProductsHaveGroupedFields(t *testing.T) {
	all := catalog.All()
	require.NotEmpty(t, all)

	for _, p := range all {
		require.NotEmpty(t, p.ID)
		require.NotEmpty(t, p.Fields, "product %s has no fields", p.ID)
		for _, f := range p.Fields {
			assert.Contains(t, []string{"KR1", "KR2", "KR3"}, f.Group, "field %s of %s", f.Name, p.ID)
		}
	}
}
