package store

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"brightsteps/backend/internal/models"
)

// logAction records an administrative action in the systemLogs collection.
// Best effort: a failed log write never fails the action that caused it.
func (s *Store) logAction(ctx context.Context, action string, detail map[string]string) {
	entry := models.SystemLog{
		ID:        uuid.NewString(),
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if user := s.CurrentUser(); user != nil {
		entry.UserID = user.ID
		entry.UserName = user.Name
	}
	if err := s.backend.Set(ctx, ColSystemLogs, entry.ID, entry); err != nil {
		log.Printf("[systemlog] write failed for action=%s: %v", action, err)
	}
}
