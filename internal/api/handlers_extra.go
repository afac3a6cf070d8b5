package api

import (
	"net/http"
	"strings"

	"github.com/imparlab/impar/internal/services"
)

// GET/POST /api/suggestions
func (rt *Router) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items, err := rt.suggestions.List(actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": items})
	case http.MethodPost:
		var in services.SuggestionInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, err)
			return
		}
		sg, err := rt.suggestions.Submit(actor, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sg)
	default:
		methodNotAllowed(w)
	}
}

// DELETE /api/suggestions/{id}
func (rt *Router) handleSuggestionScoped(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/suggestions/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	if err := rt.suggestions.Delete(actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// POST /api/team-application
func (rt *Router) handleTeamApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	var req teamApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := checkPayload(req); err != nil {
		writeError(w, err)
		return
	}
	app, err := rt.suggestions.Apply(actor, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// GET /api/team-applications
func (rt *Router) handleTeamApplications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	apps, err := rt.suggestions.ListApplications(actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
}
