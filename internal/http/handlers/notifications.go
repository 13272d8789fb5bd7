package handlers

import (
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/store"
)

type NotificationsHandler struct {
	Store *store.Store
}

// List exposes pending toasts so a polling client can drain them.
func (h NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, h.Store.Notifications())
}
