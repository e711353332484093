package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/repository"
)

// fakeBrowser mirrors the repository contract: only published properties are
// reachable, by current slug or any previous one.
type fakeBrowser struct {
	properties []*model.Property
}

func (f *fakeBrowser) ListPublished(_ context.Context, city string, maxRent float64) ([]*model.Property, error) {
	var out []*model.Property
	for _, p := range f.properties {
		if p.Status != model.PropertyPublished {
			continue
		}
		if city != "" && p.City != city {
			continue
		}
		if maxRent > 0 && p.Pricing.MonthlyRent > maxRent {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBrowser) GetBySlug(_ context.Context, slug string) (*model.Property, error) {
	for _, p := range f.properties {
		if p.Status != model.PropertyPublished {
			continue
		}
		if p.Slug == slug {
			return p, nil
		}
		for _, old := range p.PreviousSlugs {
			if old == slug {
				return p, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBrowser) ListActive(context.Context, time.Time) ([]*model.SeasonalListing, error) {
	return nil, nil
}

func browseWorld() *fakeBrowser {
	published := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return &fakeBrowser{properties: []*model.Property{
		{
			ID: "p1", OwnerID: "o1", Title: "Grand Chalet Savoyard", City: "Megève",
			Slug: "grand-chalet-savoyard", PreviousSlugs: []string{"chalet-alpin-a-megeve"},
			Status: model.PropertyPublished, Address: "12 route du Mont d'Arbois",
			Pricing: model.PropertyPricing{MonthlyRent: 2400}, PublishedAt: &published,
		},
		{
			ID: "p2", OwnerID: "o2", Title: "Studio Lyon", City: "Lyon",
			Slug: "studio-lyon", Status: model.PropertyArchived,
			Pricing: model.PropertyPricing{MonthlyRent: 600},
		},
		{
			ID: "p3", OwnerID: "o3", Title: "Maison Annecy", City: "Annecy",
			Slug: "maison-annecy", Status: model.PropertyDraft,
			Pricing: model.PropertyPricing{MonthlyRent: 1100},
		},
	}}
}

func TestListListingsServesOnlyPublished(t *testing.T) {
	browser := browseWorld()
	h := NewPublicHandler(browser, browser)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListListings(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Listings []map[string]any `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Listings, 1)
	require.Equal(t, "grand-chalet-savoyard", body.Listings[0]["slug"])
}

func TestGetListingResolvesOldSlug(t *testing.T) {
	browser := browseWorld()
	h := NewPublicHandler(browser, browser)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/listings/chalet-alpin-a-megeve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("chalet-alpin-a-megeve")
	require.NoError(t, h.GetListing(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "grand-chalet-savoyard", body["slug"], "response carries the canonical slug")
	require.NotContains(t, rec.Body.String(), "route du Mont d'Arbois", "street address stays private")
}

func TestGetListingHidesUnpublished(t *testing.T) {
	browser := browseWorld()
	h := NewPublicHandler(browser, browser)
	e := echo.New()

	for _, slug := range []string{"studio-lyon", "maison-annecy"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/listings/"+slug, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("slug")
		c.SetParamValues(slug)
		require.NoError(t, h.GetListing(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}
}
