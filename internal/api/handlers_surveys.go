package api

import (
	"net/http"
	"strings"
)

// GET/POST /api/surveys
func (rt *Router) handleSurveys(w http.ResponseWriter, r *http.Request) {
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		out, err := rt.surveys.List(actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"surveys": out})
	case http.MethodPost:
		var req createSurveyRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := checkPayload(req); err != nil {
			writeError(w, err)
			return
		}
		sv, err := rt.surveys.Create(actor, req.Title, req.Description, req.Questions, req.EndDate)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sv)
	default:
		methodNotAllowed(w)
	}
}

// Survey-scoped routes:
//
//	GET    /api/surveys/{id}
//	DELETE /api/surveys/{id}
//	POST   /api/surveys/{id}/respond
//	GET    /api/surveys/{id}/results
//	GET    /api/surveys/{id}/responses
//	GET    /api/surveys/{id}/responses.csv
//	PUT    /api/surveys/{id}/feature
func (rt *Router) handleSurveyScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/surveys/")
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

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			sv, err := rt.surveys.Get(actor, id)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, sv)
		case http.MethodDelete:
			if err := rt.surveys.Delete(actor, id); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		default:
			methodNotAllowed(w)
		}
		return
	}
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}

	switch parts[1] {
	case "respond":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req submitResponseRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := checkPayload(req); err != nil {
			writeError(w, err)
			return
		}
		resp, err := rt.responses.Submit(actor, id, req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"status": "submitted", "response_id": resp.ID})
	case "results":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		sum, err := rt.results.Summary(actor, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	case "responses":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		out, err := rt.responses.ListRaw(actor, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"responses": out})
	case "responses.csv":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		b, err := rt.responses.ExportCSV(actor, id)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=responses.csv")
		_, _ = w.Write(b)
	case "feature":
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		featured, err := rt.features.ToggleSurvey(actor, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "featured": featured})
	default:
		http.NotFound(w, r)
	}
}

// GET /api/my-responses
func (rt *Router) handleMyResponses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	out, err := rt.responses.ListOwn(actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"responses": out})
}
