package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
)

type ProductsHandler struct {
	svc      Service
	defaults scoring.WeightConfig
}

func NewProductsHandler(svc Service, defaults scoring.WeightConfig) *ProductsHandler {
	return &ProductsHandler{svc: svc, defaults: defaults}
}

type RankResponse struct {
	Weights scoring.WeightConfig `json:"weights"`
	Query   string               `json:"query"`
	Results []scoring.RankedItem `json:"results"`
}

// List ranks the catalog. Weights missing from the query fall back to the
// configured defaults.
// GET /api/v1/products?q=&performance=&battery=&portability=&price_sensitivity=
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weights, err := parseWeights(q, h.defaults)
	if err != nil {
		writeError(w, err)
		return
	}
	ranked, err := h.svc.Rank(r.Context(), weights, q.Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	if ranked == nil {
		ranked = []scoring.RankedItem{}
	}
	writeJSON(w, http.StatusOK, RankResponse{Weights: weights, Query: q.Get("q"), Results: ranked})
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Explain returns the score breakdown for one item.
// GET /api/v1/products/{id}/explain
func (h *ProductsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r, "id")
	if !ok {
		return
	}
	weights, err := parseWeights(r.URL.Query(), h.defaults)
	if err != nil {
		writeError(w, err)
		return
	}
	item, bd, err := h.svc.Explain(r.Context(), id, weights)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item":      item,
		"weights":   weights,
		"breakdown": bd,
	})
}

func parseWeights(q url.Values, defaults scoring.WeightConfig) (scoring.WeightConfig, error) {
	w := defaults
	for _, f := range []struct {
		key string
		dst *int
	}{
		{"performance", &w.Performance},
		{"battery", &w.Battery},
		{"portability", &w.Portability},
		{"price_sensitivity", &w.PriceSensitivity},
	} {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return w, fmt.Errorf("%w: %s=%q is not an integer", scoring.ErrInvalidWeights, f.key, v)
		}
		*f.dst = n
	}
	return w, w.Validate()
}

func itemID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		badRequest(w, "invalid "+param)
		return 0, false
	}
	return id, true
}
