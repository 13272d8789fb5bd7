package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brightsteps/backend/internal/models"
)

type NoticeInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
	Type    string
	Target  string `validate:"required"`
}

// PostNotice publishes a notice to one role or to ALL.
func (s *Store) PostNotice(ctx context.Context, input NoticeInput) (string, error) {
	user := s.CurrentUser()
	if user == nil {
		return "", ErrNotSignedIn
	}
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("notice", "Notice is incomplete.", err)
	}

	notice := models.Notice{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		Type:      input.Type,
		Target:    input.Target,
		AuthorID:  user.ID,
		Replies:   []models.NoticeReply{},
		Views:     []models.NoticeView{},
		CreatedAt: time.Now(),
	}
	if err := s.backend.Set(ctx, ColNotices, notice.ID, notice); err != nil {
		return "", s.fail("notice", "Could not post the notice.", err)
	}
	return notice.ID, nil
}

// ReplyNotice appends to the notice's reply thread. Replies are
// append-only; each carries its own token so the union never collapses
// two replies with identical text.
func (s *Store) ReplyNotice(ctx context.Context, noticeID, content string) error {
	user := s.CurrentUser()
	if user == nil {
		return ErrNotSignedIn
	}
	reply := models.NoticeReply{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.backend.ArrayUnion(ctx, ColNotices, noticeID, "replies", reply); err != nil {
		return s.fail("notice", "Could not post the reply.", err)
	}
	return nil
}

// MarkNoticeViewed records at most one view per user id. The dedupe runs
// against the last synced snapshot, so two calls racing within one
// emission window could both append; the backend union keeps identical
// entries from doubling but distinct timestamps are accepted as-is.
func (s *Store) MarkNoticeViewed(ctx context.Context, noticeID string) error {
	user := s.CurrentUser()
	if user == nil {
		return ErrNotSignedIn
	}

	s.mu.RLock()
	for _, notice := range s.notices {
		if notice.ID != noticeID {
			continue
		}
		for _, view := range notice.Views {
			if view.UserID == user.ID {
				s.mu.RUnlock()
				return nil
			}
		}
	}
	s.mu.RUnlock()

	view := models.NoticeView{UserID: user.ID, ViewedAt: time.Now()}
	if err := s.backend.ArrayUnion(ctx, ColNotices, noticeID, "views", view); err != nil {
		return s.fail("notice", "Could not record the view.", err)
	}
	return nil
}
