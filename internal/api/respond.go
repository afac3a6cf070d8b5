package api

import (
	"encoding/json"
	"net/http"

	"github.com/imparlab/impar/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to its HTTP status. Anything that is not
// a ServiceError is reported as a generic bad request; raw store errors are
// never echoed to clients.
func writeError(w http.ResponseWriter, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request failed"})
		return
	}
	writeJSON(w, statusFor(se.Code), map[string]string{"error": se.Message})
}

func statusFor(code services.ErrorCode) int {
	switch code {
	case services.ErrorUnauthorized:
		return http.StatusUnauthorized
	case services.ErrorForbidden:
		return http.StatusForbidden
	case services.ErrorNotFound:
		return http.StatusNotFound
	case services.ErrorConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.NewInvalidError("invalid JSON body")
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
