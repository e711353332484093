package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/model"
)

type documentReq struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"sizeBytes"`
}

var documentKinds = map[string]bool{
	model.DocumentEnergyReport: true,
	model.DocumentInsurance:    true,
	model.DocumentGasCert:      true,
	model.DocumentIdentity:     true,
	model.DocumentOther:        true,
}

// CreateDocument records the metadata of an uploaded compliance file. The
// binary lives in external storage; only its location is kept here. The
// document is linked to the owner's property when one exists.
func (h *OwnerHandler) CreateDocument(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req documentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	req.Name = strings.TrimSpace(req.Name)
	req.URL = strings.TrimSpace(req.URL)
	if !documentKinds[req.Kind] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown document kind"})
	}
	if req.Name == "" || req.URL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/url required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	doc := model.Document{
		OwnerID:    uid,
		Kind:       req.Kind,
		Name:       req.Name,
		URL:        req.URL,
		SizeBytes:  req.SizeBytes,
		UploadedAt: time.Now().UTC(),
	}
	if p, err := h.Properties.GetByOwner(ctx, uid); err == nil && p != nil {
		doc.PropertyID = p.ID
	}
	if err := h.Documents.Create(ctx, &doc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save document failed"})
	}
	return c.JSON(http.StatusCreated, doc)
}

// ListDocuments returns the owner's uploaded document records.
func (h *OwnerHandler) ListDocuments(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	docs, err := h.Documents.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load documents failed"})
	}
	if docs == nil {
		docs = []*model.Document{}
	}
	return c.JSON(http.StatusOK, echo.Map{"documents": docs})
}
