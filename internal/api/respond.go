package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/SpecHunter/internal/compare"
	"github.com/MikeSquared-Agency/SpecHunter/internal/dashboard"
	"github.com/MikeSquared-Agency/SpecHunter/internal/discovery"
	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
	"github.com/MikeSquared-Agency/SpecHunter/internal/session"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// Error codes returned alongside the message.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidWeights    = "invalid_weights"
	CodeInvalidItem       = "invalid_item"
	CodeEmptyQuery        = "empty_query"
	CodeSessionNotFound   = "session_not_found"
	CodeItemNotFound      = "item_not_found"
	CodeCapacityExceeded  = "capacity_exceeded"
	CodeDiscoveryInFlight = "discovery_in_flight"
	CodeCatalogMatch      = "catalog_match"
	CodeInternal          = "internal"
)

var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{scoring.ErrInvalidWeights, http.StatusBadRequest, CodeInvalidWeights},
	{store.ErrInvalidItem, http.StatusBadRequest, CodeInvalidItem},
	{discovery.ErrEmptyQuery, http.StatusBadRequest, CodeEmptyQuery},
	{session.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound},
	{store.ErrItemNotFound, http.StatusNotFound, CodeItemNotFound},
	{compare.ErrCapacityExceeded, http.StatusConflict, CodeCapacityExceeded},
	{dashboard.ErrDiscoveryInFlight, http.StatusConflict, CodeDiscoveryInFlight},
	{dashboard.ErrCatalogMatch, http.StatusConflict, CodeCatalogMatch},
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code. Unknown errors are 500.
func writeError(w http.ResponseWriter, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			writeJSON(w, e.status, map[string]string{"error": err.Error(), "code": e.code})
			return
		}
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error(), "code": CodeInternal})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg, "code": CodeInvalidRequest})
}
