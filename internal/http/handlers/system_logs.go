package handlers

import (
	"net/http"

	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type SystemLogsHandler struct {
	Store *store.Store
}

func (h SystemLogsHandler) List(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapViewSystemLogs); user == nil {
		return
	}
	writeJSON(w, http.StatusOK, h.Store.SystemLogs())
}
