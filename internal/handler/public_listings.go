package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/model"
	"github.com/locaflow/locaflow/internal/repository"
)

// ListingBrowser is the slice of the property repository the public
// endpoints read from. Both methods only ever surface published listings.
type ListingBrowser interface {
	ListPublished(ctx context.Context, city string, maxRent float64) ([]*model.Property, error)
	GetBySlug(ctx context.Context, slug string) (*model.Property, error)
}

// SeasonalBrowser lists seasonal availability windows.
type SeasonalBrowser interface {
	ListActive(ctx context.Context, at time.Time) ([]*model.SeasonalListing, error)
}

// PublicHandler serves the unauthenticated browse endpoints.
type PublicHandler struct {
	Properties ListingBrowser
	Seasonal   SeasonalBrowser
}

func NewPublicHandler(p ListingBrowser, s SeasonalBrowser) *PublicHandler {
	return &PublicHandler{Properties: p, Seasonal: s}
}

// listingSummary is the public shape of a listing; the street address and
// compliance details stay private until an application is accepted.
type listingSummary struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	City      string               `json:"city"`
	Kind      string               `json:"kind,omitempty"`
	Surface   float64              `json:"surface,omitempty"`
	Bedrooms  int                  `json:"bedrooms,omitempty"`
	Slug      string               `json:"slug"`
	HeroImage string               `json:"heroImage,omitempty"`
	Pricing   model.PropertyPricing `json:"pricing"`
	Seasonal  *model.SeasonalPeriod `json:"seasonal,omitempty"`
}

func summarize(p *model.Property) listingSummary {
	return listingSummary{
		ID:        p.ID,
		Title:     p.Title,
		City:      p.City,
		Kind:      p.Kind,
		Surface:   p.Surface,
		Bedrooms:  p.Bedrooms,
		Slug:      p.Slug,
		HeroImage: p.HeroImage,
		Pricing:   p.Pricing,
		Seasonal:  p.Seasonal,
	}
}

// ListListings returns published listings, with optional ?city= and
// ?max_rent= filters.
func (h *PublicHandler) ListListings(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	var maxRent float64
	if s := c.QueryParam("max_rent"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_rent"})
		}
		maxRent = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	props, err := h.Properties.ListPublished(ctx, city, maxRent)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load listings failed"})
	}
	out := make([]listingSummary, 0, len(props))
	for _, p := range props {
		out = append(out, summarize(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": out})
}

// publicListing is the detail shape; full description and photos, still no
// street address.
type publicListing struct {
	listingSummary
	Description string                `json:"description,omitempty"`
	Images      []model.PropertyImage `json:"images,omitempty"`
	PublishedAt *time.Time            `json:"publishedAt,omitempty"`
}

// GetListing resolves a slug to its published listing. Old slugs from
// before a retitle still resolve; the response carries the canonical slug
// so clients can update their links.
func (h *PublicHandler) GetListing(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Properties.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load listing failed"})
	}
	return c.JSON(http.StatusOK, publicListing{
		listingSummary: summarize(p),
		Description:    p.Description,
		Images:         p.Images,
		PublishedAt:    p.PublishedAt,
	})
}

// ListSeasonal returns seasonal listings whose availability window covers
// the current date.
func (h *PublicHandler) ListSeasonal(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	listings, err := h.Seasonal.ListActive(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seasonal listings failed"})
	}
	if listings == nil {
		listings = []*model.SeasonalListing{}
	}
	return c.JSON(http.StatusOK, echo.Map{"seasonal": listings})
}
