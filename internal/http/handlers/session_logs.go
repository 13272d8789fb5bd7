package handlers

import (
	"net/http"

	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type SessionLogsHandler struct {
	Store *store.Store
}

func (h SessionLogsHandler) List(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapViewStudents); user == nil {
		return
	}
	logs := h.Store.SessionLogs()
	if studentID := r.URL.Query().Get("student"); studentID != "" {
		filtered := []models.SessionLog{}
		for _, entry := range logs {
			if entry.StudentID == studentID {
				filtered = append(filtered, entry)
			}
		}
		logs = filtered
	}
	writeJSON(w, http.StatusOK, logs)
}

type createSessionLogRequest struct {
	StudentID       string                  `json:"student_id"`
	Date            string                  `json:"date"`
	TargetBehavior  string                  `json:"target_behavior"`
	Method          models.ChainingMethod   `json:"method"`
	Steps           []models.SessionStep    `json:"steps"`
	ProgramRequests []models.ProgramRequest `json:"program_requests"`
}

func (h SessionLogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapRecordSessions); user == nil {
		return
	}
	var req createSessionLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	logID, err := h.Store.AddSessionLog(r.Context(), store.SessionLogInput{
		StudentID:       req.StudentID,
		Date:            req.Date,
		TargetBehavior:  req.TargetBehavior,
		Method:          req.Method,
		Steps:           req.Steps,
		ProgramRequests: req.ProgramRequests,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to save session log")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": logID})
}
