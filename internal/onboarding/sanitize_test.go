package onboarding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizePrunesEmptyValues(t *testing.T) {
	in := map[string]any{
		"a": "",
		"b": map[string]any{"c": []any{}},
		"d": "x",
	}
	require.Equal(t, map[string]any{"d": "x"}, Sanitize(in))
}

func TestSanitizeKeepsZeroNumbersAndFalse(t *testing.T) {
	in := map[string]any{
		"deposit":   0.0,
		"furnished": false,
		"note":      "",
	}
	out := Sanitize(in)
	require.Equal(t, map[string]any{"deposit": 0.0, "furnished": false}, out)
}

func TestSanitizeCascades(t *testing.T) {
	// An object whose members all prune away is itself pruned.
	in := map[string]any{
		"season": map[string]any{
			"from": "",
			"to":   nil,
		},
		"photos": map[string]any{
			"images": []any{"", nil},
		},
	}
	require.Empty(t, Sanitize(in))
}

func TestSanitizeArrays(t *testing.T) {
	in := map[string]any{
		"cities": []any{"Lyon", "", "Annecy"},
	}
	require.Equal(t, map[string]any{"cities": []any{"Lyon", "Annecy"}}, Sanitize(in))
}

func TestSanitizeDoesNotModifyInput(t *testing.T) {
	in := map[string]any{"a": "", "b": "x"}
	_ = Sanitize(in)
	require.Equal(t, map[string]any{"a": "", "b": "x"}, in)
}
