package onboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Chalet Alpin à Megève":     "chalet-alpin-a-megeve",
		"Loft  --  Centre Ville!":   "loft-centre-ville",
		"T2 lumineux, 45m²":         "t2-lumineux-45m",
		"  Énorme maison général  ": "enorme-maison-general",
		"":                          "",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), in)
	}
}

func TestSlugSuffixIsStable(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	require.Equal(t, SlugSuffix(at), SlugSuffix(at))
	require.NotEqual(t, SlugSuffix(at), SlugSuffix(at.Add(time.Second)))
}
