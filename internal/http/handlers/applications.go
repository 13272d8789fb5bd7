package handlers

import (
	"context"
	"net/http"

	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type ApplicationsHandler struct {
	Store *store.Store
}

type staffApplicationRequest struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	CoverNote string `json:"cover_note"`
}

// SubmitStaff is public: it backs the landing site's careers form.
func (h ApplicationsHandler) SubmitStaff(w http.ResponseWriter, r *http.Request) {
	var req staffApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	applicationID, err := h.Store.SubmitStaffApplication(r.Context(), store.StaffApplicationInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
		CoverNote: req.CoverNote,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "application is incomplete")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": applicationID})
}

type studentApplicationRequest struct {
	ChildName   string `json:"child_name"`
	DateOfBirth string `json:"date_of_birth"`
	ParentName  string `json:"parent_name"`
	ParentEmail string `json:"parent_email"`
	ParentPhone string `json:"parent_phone"`
	Concerns    string `json:"concerns"`
}

// SubmitStudent is public: it backs the landing site's enrolment form.
func (h ApplicationsHandler) SubmitStudent(w http.ResponseWriter, r *http.Request) {
	var req studentApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	applicationID, err := h.Store.SubmitStudentApplication(r.Context(), store.StudentApplicationInput{
		ChildName:   req.ChildName,
		DateOfBirth: req.DateOfBirth,
		ParentName:  req.ParentName,
		ParentEmail: req.ParentEmail,
		ParentPhone: req.ParentPhone,
		Concerns:    req.Concerns,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "application is incomplete")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": applicationID})
}

func (h ApplicationsHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageApplications); user == nil {
		return
	}
	writeJSON(w, http.StatusOK, h.Store.StaffApplications())
}

func (h ApplicationsHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageApplications); user == nil {
		return
	}
	writeJSON(w, http.StatusOK, h.Store.StudentApplications())
}

type applicationStatusRequest struct {
	Status string `json:"status"`
}

func (h ApplicationsHandler) UpdateStaffStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Store.SetStaffApplicationStatus)
}

func (h ApplicationsHandler) UpdateStudentStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Store.SetStudentApplicationStatus)
}

func (h ApplicationsHandler) updateStatus(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id, status string) error) {
	if user := requireCapability(w, r, models.CapManageApplications); user == nil {
		return
	}
	applicationID := r.PathValue("id")
	if applicationID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	var req applicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := apply(r.Context(), applicationID, req.Status); err != nil {
		writeError(w, http.StatusBadRequest, "failed to update application")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
