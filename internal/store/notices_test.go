package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightsteps/backend/internal/models"
)

func TestPostNoticeRequiresSession(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.PostNotice(context.Background(), NoticeInput{
		Title:   "Sports day",
		Content: "Friday at 10am.",
		Target:  models.TargetAll,
	})
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestPostNoticeSyncsWithAuthor(t *testing.T) {
	s, mem := newTestStore(t)
	user := signInAdmin(t, s, mem)

	id, err := s.PostNotice(context.Background(), NoticeInput{
		Title:   "Sports day",
		Content: "Friday at 10am.",
		Type:    "event",
		Target:  string(models.RoleParent),
	})
	require.NoError(t, err)

	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, id, notices[0].ID)
	assert.Equal(t, user.ID, notices[0].AuthorID)
	assert.Empty(t, notices[0].Replies)
	assert.Empty(t, notices[0].Views)
}

func TestReplyNoticeKeepsIdenticalTexts(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)
	id, err := s.PostNotice(context.Background(), NoticeInput{
		Title: "Sports day", Content: "Friday.", Target: models.TargetAll,
	})
	require.NoError(t, err)

	require.NoError(t, s.ReplyNotice(context.Background(), id, "Noted, thanks!"))
	require.NoError(t, s.ReplyNotice(context.Background(), id, "Noted, thanks!"))

	notices := s.Notices()
	require.Len(t, notices, 1)
	// Each reply carries its own token, so the union never collapses them.
	assert.Len(t, notices[0].Replies, 2)
}

func TestMarkNoticeViewedIsIdempotentPerUser(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)
	id, err := s.PostNotice(context.Background(), NoticeInput{
		Title: "Sports day", Content: "Friday.", Target: models.TargetAll,
	})
	require.NoError(t, err)

	require.NoError(t, s.MarkNoticeViewed(context.Background(), id))
	require.NoError(t, s.MarkNoticeViewed(context.Background(), id))
	require.NoError(t, s.MarkNoticeViewed(context.Background(), id))

	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Len(t, notices[0].Views, 1, "one view per user id")
}
