package handlers

import (
	"net/http"

	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type MilestonesHandler struct {
	Store *store.Store
}

func (h MilestonesHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapViewStudents); user == nil {
		return
	}
	records := h.Store.MilestoneRecords()
	if studentID := r.URL.Query().Get("student"); studentID != "" {
		filtered := []models.MilestoneRecord{}
		for _, record := range records {
			if record.StudentID == studentID {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}
	writeJSON(w, http.StatusOK, records)
}

type createMilestoneRecordRequest struct {
	StudentID   string                          `json:"student_id"`
	AgeCategory string                          `json:"age_category"`
	Sections    []models.MilestoneResultSection `json:"sections"`
	RedFlags    []models.MilestoneResult        `json:"red_flags"`
}

func (h MilestonesHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapRecordMilestones); user == nil {
		return
	}
	var req createMilestoneRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	recordID, err := h.Store.AddMilestoneRecord(r.Context(), store.MilestoneRecordInput{
		StudentID:   req.StudentID,
		AgeCategory: req.AgeCategory,
		Sections:    req.Sections,
		RedFlags:    req.RedFlags,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to save assessment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": recordID})
}

func (h MilestonesHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapViewStudents); user == nil {
		return
	}
	writeJSON(w, http.StatusOK, h.Store.MilestoneTemplates())
}

type saveTemplateRequest struct {
	ID       string                    `json:"id"`
	Label    string                    `json:"label"`
	MinAge   int                       `json:"min_age"`
	MaxAge   int                       `json:"max_age"`
	Sections []models.MilestoneSection `json:"sections"`
	RedFlags []string                  `json:"red_flags"`
}

func (h MilestonesHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageTemplates); user == nil {
		return
	}
	var req saveTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	templateID, err := h.Store.SaveMilestoneTemplate(r.Context(), store.MilestoneTemplateInput{
		ID:       req.ID,
		Label:    req.Label,
		MinAge:   req.MinAge,
		MaxAge:   req.MaxAge,
		Sections: req.Sections,
		RedFlags: req.RedFlags,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to save template")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": templateID})
}

func (h MilestonesHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageTemplates); user == nil {
		return
	}
	templateID := r.PathValue("id")
	if templateID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	if err := h.Store.DeleteMilestoneTemplate(r.Context(), templateID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete template")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
