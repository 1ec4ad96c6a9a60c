package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	s := New()
	s.Toggle(7)
	require.True(t, s.Has(7))
	s.Toggle(7)
	require.False(t, s.Has(7))
	require.Zero(t, s.Size())
}

func TestSetAll(t *testing.T) {
	s := New()
	s.SetAll([]int64{3, 1, 2}, true)
	require.Equal(t, 3, s.Size())
	require.Equal(t, []int64{1, 2, 3}, s.IDs())

	s.SetAll([]int64{1, 2}, false)
	require.Equal(t, []int64{3}, s.IDs())
}

func TestClear(t *testing.T) {
	s := New()
	s.SetAll([]int64{1, 2, 3}, true)
	s.Clear()
	require.Zero(t, s.Size())
	require.Empty(t, s.IDs())
	s.Toggle(1)
	require.True(t, s.Has(1))
}
