package handlers

import (
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type SettingsHandler struct {
	Store *store.Store
}

func (h SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, h.Store.Settings())
}

// updateSettingsRequest uses pointers so absent fields stay untouched:
// settings updates are merges, never overwrites.
type updateSettingsRequest struct {
	Positions         *[]models.Position `json:"positions"`
	Classes           *[]string          `json:"classes"`
	FeesAmount        *float64           `json:"fees_amount"`
	CurrentTerm       *string            `json:"current_term"`
	NextTermStartDate *string            `json:"next_term_start_date"`
	DefaultTaskSteps  *[]string          `json:"default_task_steps"`
}

func (h SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageSettings); user == nil {
		return
	}
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Store.UpdateSettings(r.Context(), store.SettingsPatch{
		Positions:         req.Positions,
		Classes:           req.Classes,
		FeesAmount:        req.FeesAmount,
		CurrentTerm:       req.CurrentTerm,
		NextTermStartDate: req.NextTermStartDate,
		DefaultTaskSteps:  req.DefaultTaskSteps,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, h.Store.Settings())
}
