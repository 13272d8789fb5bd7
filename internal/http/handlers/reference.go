package handlers

import (
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type ReferenceHandler struct {
	Store *store.Store
}

type referenceResponse struct {
	Classes          []string          `json:"classes"`
	Positions        []models.Position `json:"positions"`
	DefaultTaskSteps []string          `json:"default_task_steps"`
}

// Get exposes the pick-lists forms need, sourced from settings.
func (h ReferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	settings := h.Store.Settings()
	writeJSON(w, http.StatusOK, referenceResponse{
		Classes:          settings.Classes,
		Positions:        settings.Positions,
		DefaultTaskSteps: settings.DefaultTaskSteps,
	})
}
