package handlers

import (
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type NoticesHandler struct {
	Store *store.Store
}

// List returns the notices addressed to the caller's role or to ALL.
func (h NoticesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := httpctx.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	visible := []models.Notice{}
	for _, notice := range h.Store.Notices() {
		if notice.Target == models.TargetAll || notice.Target == string(user.Role) || notice.AuthorID == user.ID {
			visible = append(visible, notice)
		}
	}
	writeJSON(w, http.StatusOK, visible)
}

type createNoticeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Target  string `json:"target"`
}

func (h NoticesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapPostNotices); user == nil {
		return
	}
	var req createNoticeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	noticeID, err := h.Store.PostNotice(r.Context(), store.NoticeInput{
		Title:   req.Title,
		Content: req.Content,
		Type:    req.Type,
		Target:  req.Target,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to post notice")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": noticeID})
}

type replyRequest struct {
	Content string `json:"content"`
}

func (h NoticesHandler) Reply(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapReplyNotices); user == nil {
		return
	}
	noticeID := r.PathValue("id")
	if noticeID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	var req replyRequest
	if err := decodeJSON(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Store.ReplyNotice(r.Context(), noticeID, req.Content); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to post reply")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "posted"})
}

func (h NoticesHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	if user := httpctx.UserFromContext(r.Context()); user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	noticeID := r.PathValue("id")
	if noticeID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	if err := h.Store.MarkNoticeViewed(r.Context(), noticeID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record view")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "viewed"})
}
