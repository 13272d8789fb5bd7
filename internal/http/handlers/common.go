package handlers

import (
	"encoding/json"
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
)

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// requireCapability resolves the request user and checks exactly one
// capability; it writes the failure response itself and returns nil when
// the caller should bail out.
func requireCapability(w http.ResponseWriter, r *http.Request, capability models.Capability) *models.User {
	user := httpctx.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil
	}
	if !models.RoleCan(user.Role, capability) {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return nil
	}
	return user
}
