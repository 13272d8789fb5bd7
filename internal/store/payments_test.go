package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightsteps/backend/internal/models"
)

func registerTestStudent(t *testing.T, s *Store) string {
	t.Helper()
	result, err := s.RegisterStudent(context.Background(), RegisterStudentInput{
		FullName:      "Amani Njoroge",
		DateOfBirth:   "2019-04-02",
		AssignedClass: "Sunflower",
		ParentName:    "Grace Njoroge",
		ParentEmail:   "grace@example.com",
	})
	require.NoError(t, err)
	return result.StudentID
}

func TestRecordPaymentRollsIntoStudentTotal(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)
	studentID := registerTestStudent(t, s)

	_, err := s.RecordPayment(context.Background(), PaymentInput{
		StudentID: studentID,
		Amount:    5000,
		Method:    "mpesa",
		Term:      "Term 1 2026",
	})
	require.NoError(t, err)
	_, err = s.RecordPayment(context.Background(), PaymentInput{
		StudentID: studentID,
		Amount:    2500,
		Method:    "cash",
	})
	require.NoError(t, err)

	payments := s.Payments()
	require.Len(t, payments, 2)

	students := s.Students()
	require.Len(t, students, 1)
	assert.Equal(t, 7500.0, students[0].TotalPaid)
}

func TestRecordPaymentUnknownStudent(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)

	_, err := s.RecordPayment(context.Background(), PaymentInput{
		StudentID: "BS-9999",
		Amount:    5000,
		Method:    "cash",
	})
	require.Error(t, err)
	assert.Empty(t, s.Payments())
}

func TestAddHealthEntryDefaultsRecorder(t *testing.T) {
	s, mem := newTestStore(t)
	user := signInAdmin(t, s, mem)
	studentID := registerTestStudent(t, s)

	require.NoError(t, s.AddHealthEntry(context.Background(), studentID, models.HealthEntry{
		Date: "2026-02-10",
		Note: "Mild fever, parent notified.",
	}))

	students := s.Students()
	require.Len(t, students, 1)
	require.Len(t, students[0].HealthHistory, 1)
	assert.Equal(t, user.ID, students[0].HealthHistory[0].RecordedBy)
}

func TestApplicationLifecycle(t *testing.T) {
	s, mem := newTestStore(t)

	// Submission needs no session; it comes from the public site.
	id, err := s.SubmitStaffApplication(context.Background(), StaffApplicationInput{
		FullName: "Joy Wambui",
		Email:    "joy@example.com",
		Position: "Occupational Therapist",
	})
	require.NoError(t, err)

	applications := s.StaffApplications()
	require.Len(t, applications, 1)
	assert.Equal(t, models.ApplicationPending, applications[0].Status)

	signInAdmin(t, s, mem)
	require.Error(t, s.SetStaffApplicationStatus(context.Background(), id, "archived"))
	require.NoError(t, s.SetStaffApplicationStatus(context.Background(), id, models.ApplicationApproved))

	applications = s.StaffApplications()
	require.Len(t, applications, 1)
	assert.Equal(t, models.ApplicationApproved, applications[0].Status)
}

func TestStudentApplicationValidation(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SubmitStudentApplication(context.Background(), StudentApplicationInput{
		ChildName:   "Amani",
		ParentEmail: "not-an-email",
	})
	require.Error(t, err)
	assert.Empty(t, s.StudentApplications())
}
