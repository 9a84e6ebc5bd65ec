package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenumberMoveToFront(t *testing.T) {
	out, ok := renumber([]uint64{10, 20, 30}, 30, 0)
	require.True(t, ok)
	assert.Equal(t, []uint64{30, 10, 20}, out)
}

func TestRenumberMoveToMiddle(t *testing.T) {
	out, ok := renumber([]uint64{10, 20, 30, 40}, 10, 2)
	require.True(t, ok)
	assert.Equal(t, []uint64{20, 30, 10, 40}, out)
}

func TestRenumberMoveToEnd(t *testing.T) {
	out, ok := renumber([]uint64{10, 20, 30}, 10, 2)
	require.True(t, ok)
	assert.Equal(t, []uint64{20, 30, 10}, out)
}

func TestRenumberClampsIndex(t *testing.T) {
	out, ok := renumber([]uint64{10, 20, 30}, 20, 99)
	require.True(t, ok)
	assert.Equal(t, []uint64{10, 30, 20}, out)

	out, ok = renumber([]uint64{10, 20, 30}, 20, -5)
	require.True(t, ok)
	assert.Equal(t, []uint64{20, 10, 30}, out)
}

func TestRenumberSamePosition(t *testing.T) {
	out, ok := renumber([]uint64{10, 20, 30}, 20, 1)
	require.True(t, ok)
	assert.Equal(t, []uint64{10, 20, 30}, out)
}

func TestRenumberUnknownCard(t *testing.T) {
	out, ok := renumber([]uint64{10, 20, 30}, 99, 0)
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestRenumberSingleCard(t *testing.T) {
	out, ok := renumber([]uint64{10}, 10, 5)
	require.True(t, ok)
	assert.Equal(t, []uint64{10}, out)
}
