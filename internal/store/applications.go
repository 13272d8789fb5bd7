package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brightsteps/backend/internal/models"
)

type StaffApplicationInput struct {
	FullName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"omitempty,min=7"`
	Position  string `validate:"required"`
	CoverNote string
}

// SubmitStaffApplication is reachable from the public landing site; no
// session is required.
func (s *Store) SubmitStaffApplication(ctx context.Context, input StaffApplicationInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("application", "Application is incomplete.", err)
	}
	application := models.StaffApplication{
		ID:        uuid.NewString(),
		FullName:  input.FullName,
		Email:     input.Email,
		Phone:     input.Phone,
		Position:  input.Position,
		CoverNote: input.CoverNote,
		Status:    models.ApplicationPending,
		CreatedAt: time.Now(),
	}
	if err := s.backend.Set(ctx, ColStaffApplications, application.ID, application); err != nil {
		return "", s.fail("application", "Could not submit the application.", err)
	}
	return application.ID, nil
}

type StudentApplicationInput struct {
	ChildName   string `validate:"required"`
	DateOfBirth string `validate:"required"`
	ParentName  string `validate:"required"`
	ParentEmail string `validate:"required,email"`
	ParentPhone string `validate:"omitempty,min=7"`
	Concerns    string
}

func (s *Store) SubmitStudentApplication(ctx context.Context, input StudentApplicationInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("application", "Application is incomplete.", err)
	}
	application := models.StudentApplication{
		ID:          uuid.NewString(),
		ChildName:   input.ChildName,
		DateOfBirth: input.DateOfBirth,
		ParentName:  input.ParentName,
		ParentEmail: input.ParentEmail,
		ParentPhone: input.ParentPhone,
		Concerns:    input.Concerns,
		Status:      models.ApplicationPending,
		CreatedAt:   time.Now(),
	}
	if err := s.backend.Set(ctx, ColStudentApplications, application.ID, application); err != nil {
		return "", s.fail("application", "Could not submit the application.", err)
	}
	return application.ID, nil
}

// SetStaffApplicationStatus moves an application between pending,
// approved and rejected. Approval does not register the applicant; an
// admin completes registration separately so credentials are provisioned
// through the normal path.
func (s *Store) SetStaffApplicationStatus(ctx context.Context, applicationID, status string) error {
	return s.setApplicationStatus(ctx, ColStaffApplications, applicationID, status)
}

func (s *Store) SetStudentApplicationStatus(ctx context.Context, applicationID, status string) error {
	return s.setApplicationStatus(ctx, ColStudentApplications, applicationID, status)
}

func (s *Store) setApplicationStatus(ctx context.Context, collection, applicationID, status string) error {
	switch status {
	case models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
	default:
		return s.fail("application", "Unknown application status.", fmt.Errorf("invalid status %q", status))
	}
	if err := s.backend.Merge(ctx, collection, applicationID, map[string]any{"status": status}); err != nil {
		return s.fail("application", "Could not update the application.", err)
	}
	s.logAction(ctx, "application.status", map[string]string{"applicationId": applicationID, "status": status})
	return nil
}
