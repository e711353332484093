package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/locaflow/locaflow/internal/model"
)

// The public browse queries must always pin status to published; draft and
// archived properties are never served, whatever filters the caller adds.
func TestPublicListFilterPinsPublished(t *testing.T) {
	require.Equal(t, bson.M{"status": model.PropertyPublished}, publicListFilter("", 0))

	f := publicListFilter("Megève", 1500)
	require.Equal(t, model.PropertyPublished, f["status"])
	require.Equal(t, "Megève", f["city"])
	require.Equal(t, bson.M{"$lte": 1500.0}, f["pricing.monthlyRent"])
}

func TestPublicSlugFilterFollowsHistory(t *testing.T) {
	f := publicSlugFilter("chalet-alpin")
	require.Equal(t, model.PropertyPublished, f["status"])
	require.Equal(t, []bson.M{
		{"slug": "chalet-alpin"},
		{"previousSlugs": "chalet-alpin"},
	}, f["$or"])
}
