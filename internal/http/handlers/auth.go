package handlers

import (
	"errors"
	"net/http"

	"brightsteps/backend/internal/backend"
	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

// Sessions issues and revokes the opaque token the middleware checks.
type Sessions interface {
	Issue() string
	Clear()
}

type AuthHandler struct {
	Store    *store.Store
	Sessions Sessions
}

type loginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login distinguishes its failure modes so the UI can render them inline:
// wrong credentials, role mismatch, and an orphaned credential (no
// profile) each get their own message.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "email, password and role are required")
		return
	}

	user, err := h.Store.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, store.ErrRoleMismatch):
			writeError(w, http.StatusForbidden, "this account is not registered for the selected role")
		case errors.Is(err, store.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "no profile exists for this account")
		default:
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: h.Sessions.Issue(), User: *user})
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear()
	if err := h.Store.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Store.ChangePassword(r.Context(), req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, "password update failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
