package api

import (
	"net/http"

	"github.com/imparlab/impar/internal/services"
)

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := checkPayload(req); err != nil {
		writeError(w, err)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.Name, req.Profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": res.Token, "user": res.User})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := checkPayload(req); err != nil {
		writeError(w, err)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user": res.User})
}

// GET /api/auth/me
func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, actor)
}

// GET/PUT /api/profile
func (rt *Router) handleProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		u, err := rt.users.Profile(actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	case http.MethodPut:
		var upd services.ProfileUpdate
		if err := decodeJSON(r, &upd); err != nil {
			writeError(w, err)
			return
		}
		u, err := rt.users.UpdateProfile(actor, upd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	default:
		methodNotAllowed(w)
	}
}

// GET /api/admin/users
func (rt *Router) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	actor, ok := rt.requireActor(w, r)
	if !ok {
		return
	}
	users, err := rt.users.ListAll(actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}
