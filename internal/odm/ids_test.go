package odm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIDUniqueAndSortable(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.Len(t, id, 26)
		require.False(t, seen[id])
		seen[id] = true
		// Monotonic entropy keeps ids of the same millisecond ordered.
		require.Greater(t, id, prev)
		prev = id
	}
}
