package handlers

import (
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type StudentsHandler struct {
	Store *store.Store
}

func (h StudentsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := httpctx.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	students := h.Store.Students()

	// Parents only ever see their own child.
	if user.Role == models.RoleParent {
		own := []models.Student{}
		for _, student := range students {
			if student.ParentID == user.ID {
				own = append(own, student)
			}
		}
		writeJSON(w, http.StatusOK, own)
		return
	}

	if !models.RoleCan(user.Role, models.CapViewStudents) {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	if class := r.URL.Query().Get("class"); class != "" {
		filtered := []models.Student{}
		for _, student := range students {
			if student.AssignedClass == class {
				filtered = append(filtered, student)
			}
		}
		students = filtered
	}
	writeJSON(w, http.StatusOK, students)
}

type registerStudentRequest struct {
	FullName      string `json:"full_name"`
	DateOfBirth   string `json:"date_of_birth"`
	AssignedClass string `json:"assigned_class"`
	ParentName    string `json:"parent_name"`
	ParentEmail   string `json:"parent_email"`
	ParentPhone   string `json:"parent_phone"`
}

func (h StudentsHandler) Register(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageStudents); user == nil {
		return
	}
	var req registerStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.Store.RegisterStudent(r.Context(), store.RegisterStudentInput{
		FullName:      req.FullName,
		DateOfBirth:   req.DateOfBirth,
		AssignedClass: req.AssignedClass,
		ParentName:    req.ParentName,
		ParentEmail:   req.ParentEmail,
		ParentPhone:   req.ParentPhone,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"student_id":    result.StudentID,
		"parent_reused": result.ParentReused,
	})
}

type healthEntryRequest struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

func (h StudentsHandler) AddHealthEntry(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageStudents); user == nil {
		return
	}
	studentID := r.PathValue("id")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	var req healthEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Store.AddHealthEntry(r.Context(), studentID, models.HealthEntry{
		Date: req.Date,
		Note: req.Note,
	}); err != nil {
		writeError(w, http.StatusBadRequest, "failed to save health entry")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}
