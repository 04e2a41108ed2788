package api

import (
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

type CatalogHandler struct {
	svc Service
}

func NewCatalogHandler(svc Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Add appends an item. The id is a hint; a colliding or missing id is
// replaced and the stored item is returned.
// POST /api/v1/catalog
func (h *CatalogHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item store.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.svc.AddItem(r.Context(), &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}
