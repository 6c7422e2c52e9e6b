package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7(t *testing.T) {
	g := UUIDv7{}
	a, b := g.NewID(), g.NewID()
	assert.NotEqual(t, a, b)

	u, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
}
