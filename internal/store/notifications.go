package store

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
)

// Notification is a transient in-memory toast. It is never persisted and
// expires on a background timer.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notify queues a toast and schedules its removal after the store's
// expiry duration (5s by default). Returns the toast's token.
func (s *Store) Notify(kind, message string) string {
	notification := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.notifications = append(s.notifications, notification)
	duration := s.toastDuration
	s.mu.Unlock()

	time.AfterFunc(duration, func() {
		s.Dismiss(notification.ID)
	})
	return notification.ID
}

// Dismiss removes a toast by token; unknown tokens are ignored.
func (s *Store) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, notification := range s.notifications {
		if notification.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// Notifications returns pending toasts in insertion order.
func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notification(nil), s.notifications...)
}
