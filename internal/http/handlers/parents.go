package handlers

import (
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type ParentsHandler struct {
	Store *store.Store
}

type parentOverviewResponse struct {
	Student     *models.Student          `json:"student"`
	SessionLogs []models.SessionLog      `json:"session_logs"`
	Milestones  []models.MilestoneRecord `json:"milestones"`
	Orders      []models.Order           `json:"orders"`
	FeesAmount  float64                  `json:"fees_amount"`
	CurrentTerm string                   `json:"current_term"`
}

// Overview bundles everything a parent's dashboard shows about their
// child in one read.
func (h ParentsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user := httpctx.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if user.Role != models.RoleParent {
		writeError(w, http.StatusForbidden, "parent account required")
		return
	}

	var student *models.Student
	for _, candidate := range h.Store.Students() {
		if candidate.ParentID == user.ID {
			found := candidate
			student = &found
			break
		}
	}
	if student == nil {
		writeError(w, http.StatusNotFound, "no student linked to this account")
		return
	}

	response := parentOverviewResponse{
		Student:     student,
		SessionLogs: []models.SessionLog{},
		Milestones:  []models.MilestoneRecord{},
		Orders:      []models.Order{},
	}
	for _, entry := range h.Store.SessionLogs() {
		if entry.StudentID == student.ID {
			response.SessionLogs = append(response.SessionLogs, entry)
		}
	}
	for _, record := range h.Store.MilestoneRecords() {
		if record.StudentID == student.ID {
			response.Milestones = append(response.Milestones, record)
		}
	}
	for _, order := range h.Store.Orders() {
		if order.UserID == user.ID {
			response.Orders = append(response.Orders, order)
		}
	}
	settings := h.Store.Settings()
	response.FeesAmount = settings.FeesAmount
	response.CurrentTerm = settings.CurrentTerm

	writeJSON(w, http.StatusOK, response)
}
