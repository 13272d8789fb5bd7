package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brightsteps/backend/internal/models"
)

type PaymentInput struct {
	StudentID string  `validate:"required"`
	Amount    float64 `validate:"gt=0"`
	Method    string  `validate:"required"`
	Term      string
}

// RecordPayment appends a payment document and rolls the amount into the
// student's running total. The total is a convenience mirror; the payment
// documents remain the authoritative history.
func (s *Store) RecordPayment(ctx context.Context, input PaymentInput) (string, error) {
	user := s.CurrentUser()
	if user == nil {
		return "", ErrNotSignedIn
	}
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("payment", "Payment details are incomplete.", err)
	}

	var student *models.Student
	s.mu.RLock()
	for i := range s.students {
		if s.students[i].ID == input.StudentID {
			copy := s.students[i]
			student = &copy
		}
	}
	s.mu.RUnlock()
	if student == nil {
		return "", s.fail("payment", "Student not found.", fmt.Errorf("unknown student %q", input.StudentID))
	}

	payment := models.Payment{
		ID:         uuid.NewString(),
		StudentID:  input.StudentID,
		Amount:     input.Amount,
		Method:     input.Method,
		Term:       input.Term,
		RecordedBy: user.ID,
		CreatedAt:  time.Now(),
	}
	if err := s.backend.Set(ctx, ColPayments, payment.ID, payment); err != nil {
		return "", s.fail("payment", "Could not record the payment.", err)
	}
	if err := s.backend.Merge(ctx, ColStudents, input.StudentID, map[string]any{
		"totalPaid": student.TotalPaid + input.Amount,
	}); err != nil {
		return "", s.fail("payment", "Payment saved but the student total was not updated.", err)
	}

	s.logAction(ctx, "payment.recorded", map[string]string{"studentId": input.StudentID})
	s.Notify(NotifySuccess, "Payment recorded.")
	return payment.ID, nil
}

// AddHealthEntry appends to a student's health history via the backend's
// array-union so concurrent writers cannot drop each other's entries.
func (s *Store) AddHealthEntry(ctx context.Context, studentID string, entry models.HealthEntry) error {
	user := s.CurrentUser()
	if user == nil {
		return ErrNotSignedIn
	}
	if entry.RecordedBy == "" {
		entry.RecordedBy = user.ID
	}
	if err := s.backend.ArrayUnion(ctx, ColStudents, studentID, "healthHistory", entry); err != nil {
		return s.fail("health", "Could not save the health entry.", err)
	}
	return nil
}
