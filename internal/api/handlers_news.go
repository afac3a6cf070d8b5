package api

import (
	"net/http"
	"strings"
)

// GET/POST /api/news
func (rt *Router) handleNews(w http.ResponseWriter, r *http.Request) {
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items, err := rt.news.List()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"news": items})
	case http.MethodPost:
		var req createNewsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := checkPayload(req); err != nil {
			writeError(w, err)
			return
		}
		n, err := rt.news.Create(actor, req.Title, req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, n)
	default:
		methodNotAllowed(w)
	}
}

// DELETE /api/news/{id}, PUT /api/news/{id}/feature
func (rt *Router) handleNewsScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/news/")
	parts := strings.Split(rest, "/")
	if parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodDelete:
		if err := rt.news.Delete(actor, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	case len(parts) == 2 && parts[1] == "feature":
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		featured, err := rt.features.ToggleNews(actor, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "featured": featured})
	default:
		http.NotFound(w, r)
	}
}

// GET /api/featured — the only route that serves unauthenticated callers.
func (rt *Router) handleFeatured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	items, err := rt.features.Featured()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"featured": items})
}
