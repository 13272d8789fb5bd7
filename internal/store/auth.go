package store

import (
	"context"
	"errors"
	"fmt"

	"brightsteps/backend/internal/backend"
	"brightsteps/backend/internal/models"
)

// Login signs in with email/password and verifies the stored profile
// matches the role the caller selected. Unlike other actions, login-path
// failures are returned distinctly so the UI can render them inline:
// a wrong role signs the just-established session back out.
func (s *Store) Login(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	uid, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("sign-in failed: %w", err)
	}

	doc, err := s.backend.Get(ctx, ColUsers, uid)
	if err != nil {
		_ = s.backend.SignOut(ctx)
		if errors.Is(err, backend.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}
	var user models.User
	if err := doc.DataTo(&user); err != nil {
		_ = s.backend.SignOut(ctx)
		return nil, fmt.Errorf("profile decode failed: %w", err)
	}
	user.ID = uid

	if user.Role != role {
		_ = s.backend.SignOut(ctx)
		return nil, ErrRoleMismatch
	}

	s.mu.Lock()
	s.user = &user
	s.loggedIn = true
	s.activeView = ViewApp
	s.mu.Unlock()
	s.broadcast("session")
	return &user, nil
}

func (s *Store) Logout(ctx context.Context) error {
	if err := s.backend.SignOut(ctx); err != nil {
		return s.fail("logout", "Sign-out failed.", err)
	}
	return nil
}

// ChangePassword updates the signed-in principal's credential.
func (s *Store) ChangePassword(ctx context.Context, newPassword string) error {
	if !s.IsLoggedIn() {
		return ErrNotSignedIn
	}
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if err := s.backend.UpdatePassword(ctx, newPassword); err != nil {
		return s.fail("password", "Password update failed.", err)
	}
	s.Notify(NotifySuccess, "Password updated.")
	return nil
}
