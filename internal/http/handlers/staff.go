package handlers

import (
	"net/http"

	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type StaffHandler struct {
	Store *store.Store
}

func (h StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapViewStudents); user == nil {
		return
	}
	writeJSON(w, http.StatusOK, h.Store.Staff())
}

type registerStaffRequest struct {
	FullName        string      `json:"full_name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Position        string      `json:"position"`
	AssignedClasses []string    `json:"assigned_classes"`
	Role            models.Role `json:"role"`
}

func (h StaffHandler) Register(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapManageStaff); user == nil {
		return
	}
	var req registerStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	staffID, err := h.Store.RegisterStaff(r.Context(), store.RegisterStaffInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Position:        req.Position,
		AssignedClasses: req.AssignedClasses,
		Role:            req.Role,
	})
	if err != nil {
		if err == store.ErrEmailExists {
			writeError(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		writeError(w, http.StatusBadRequest, "registration failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"staff_id": staffID})
}
