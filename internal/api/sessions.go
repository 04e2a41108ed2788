package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/SpecHunter/internal/broker"
	"github.com/MikeSquared-Agency/SpecHunter/internal/dashboard"
	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
)

type SessionsHandler struct {
	svc Service
}

func NewSessionsHandler(svc Service) *SessionsHandler {
	return &SessionsHandler{svc: svc}
}

type SearchRequest struct {
	Text string `json:"text"`
}

func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.CreateSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK)(h.svc.View(r.Context(), id))
}

// SetWeights replaces all four weights.
// PUT /api/v1/sessions/{id}/weights
func (h *SessionsHandler) SetWeights(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req scoring.WeightConfig
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	h.respond(w, http.StatusOK)(h.svc.Apply(r.Context(), id, dashboard.SetWeights{Weights: req}))
}

func (h *SessionsHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	h.respond(w, http.StatusOK)(h.svc.Apply(r.Context(), id, dashboard.SetSearch{Text: req.Text}))
}

// ToggleCompare adds or removes an item from the comparison.
// POST /api/v1/sessions/{id}/compare/{item_id}
func (h *SessionsHandler) ToggleCompare(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	item, ok := itemID(w, r, "item_id")
	if !ok {
		return
	}
	h.respond(w, http.StatusOK)(h.svc.ToggleCompare(r.Context(), id, item))
}

func (h *SessionsHandler) ClearCompare(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK)(h.svc.Apply(r.Context(), id, dashboard.ClearCompare{}))
}

// StartDiscovery looks up the session's search text in the background. Poll
// the session until discovery.loading is false.
// POST /api/v1/sessions/{id}/discover
func (h *SessionsHandler) StartDiscovery(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusAccepted)(h.svc.StartDiscovery(r.Context(), id))
}

func (h *SessionsHandler) CancelDiscovery(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK)(h.svc.CancelDiscovery(r.Context(), id))
}

func (h *SessionsHandler) respond(w http.ResponseWriter, status int) func(*broker.SessionView, error) {
	return func(v *broker.SessionView, err error) {
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, status, v)
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}
