package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"brightsteps/backend/internal/backend"
	"brightsteps/backend/internal/models"
)

// defaultAccountPassword is the fixed initial credential for accounts
// provisioned during registration; holders are expected to change it.
const defaultAccountPassword = "bs123456"

// studentEmailDomain forms the sign-in email for student credentials from
// the admission code.
const studentEmailDomain = "@brightsteps.ac"

type RegisterStudentInput struct {
	FullName      string `validate:"required"`
	DateOfBirth   string `validate:"required"`
	AssignedClass string `validate:"required"`
	ParentName    string `validate:"required"`
	ParentEmail   string `validate:"required,email"`
	ParentPhone   string `validate:"omitempty,min=7"`
}

type RegisterStudentResult struct {
	StudentID    string
	ParentReused bool
}

// RegisterStudent provisions a student: admission code, auth credential
// with the default password, student document, matching user profile, and
// a parent account created lazily unless one already exists for the
// parent's email. The secondary auth session used for account creation is
// always released, success or failure.
//
// The admission code is derived by counting existing student documents,
// which is not transactionally safe against concurrent registrations;
// see DESIGN.md.
func (s *Store) RegisterStudent(ctx context.Context, input RegisterStudentInput) (RegisterStudentResult, error) {
	var result RegisterStudentResult
	if err := s.validate.Struct(input); err != nil {
		return result, s.fail("register-student", "Registration form is incomplete.", err)
	}

	s.mu.RLock()
	studentCount := len(s.students)
	s.mu.RUnlock()
	studentID := fmt.Sprintf("BS-%04d", studentCount+1)
	studentEmail := strings.ToLower(studentID) + studentEmailDomain

	defer func() {
		if err := s.backend.ReleaseSecondary(ctx); err != nil {
			log.Printf("[register] secondary session release failed: %v", err)
		}
	}()

	uid, err := s.backend.CreateAccount(ctx, studentEmail, defaultAccountPassword)
	if err != nil {
		if errors.Is(err, backend.ErrEmailInUse) {
			return result, s.fail("register-student", "A student account already exists for this admission code.", ErrEmailExists)
		}
		return result, s.fail("register-student", "Could not create the student account.", err)
	}

	student := models.Student{
		ID:            studentID,
		AuthUID:       uid,
		FullName:      input.FullName,
		DateOfBirth:   input.DateOfBirth,
		AssignedClass: input.AssignedClass,
		ParentName:    input.ParentName,
		ParentEmail:   strings.ToLower(input.ParentEmail),
		ParentPhone:   input.ParentPhone,
		HealthHistory: []models.HealthEntry{},
		CreatedAt:     time.Now(),
	}
	if err := s.backend.Set(ctx, ColStudents, studentID, student); err != nil {
		return result, s.fail("register-student", "Could not save the student record.", err)
	}

	profile := models.User{
		ID:        uid,
		Name:      input.FullName,
		Email:     studentEmail,
		Role:      models.RoleStudent,
		CreatedAt: time.Now(),
	}
	if err := s.backend.Set(ctx, ColUsers, uid, profile); err != nil {
		return result, s.fail("register-student", "Could not save the student profile.", err)
	}

	parentID, reused, err := s.resolveParent(ctx, student)
	if err != nil {
		return result, s.fail("register-student", "Could not set up the parent account.", err)
	}
	if err := s.backend.Merge(ctx, ColStudents, studentID, map[string]any{"parentId": parentID}); err != nil {
		return result, s.fail("register-student", "Could not link the parent account.", err)
	}

	s.logAction(ctx, "student.registered", map[string]string{"studentId": studentID})
	if reused {
		s.Notify(NotifyInfo, "Existing parent account was linked to this student.")
	} else {
		s.Notify(NotifySuccess, "Student and parent accounts created.")
	}
	result.StudentID = studentID
	result.ParentReused = reused
	return result, nil
}

// resolveParent links an existing parent account by email, or creates a
// fresh credential plus Parent/User pair when none exists.
func (s *Store) resolveParent(ctx context.Context, student models.Student) (string, bool, error) {
	existing, err := s.backend.QueryEq(ctx, ColUsers, "email", student.ParentEmail)
	if err != nil {
		return "", false, err
	}
	if len(existing) > 0 {
		return existing[0].ID, true, nil
	}

	parentUID, err := s.backend.CreateAccount(ctx, student.ParentEmail, defaultAccountPassword)
	if err != nil {
		return "", false, err
	}
	now := time.Now()
	profile := models.User{
		ID:        parentUID,
		Name:      student.ParentName,
		Email:     student.ParentEmail,
		Role:      models.RoleParent,
		CreatedAt: now,
	}
	if err := s.backend.Set(ctx, ColUsers, parentUID, profile); err != nil {
		return "", false, err
	}
	parent := models.Parent{
		ID:        parentUID,
		Name:      student.ParentName,
		Email:     student.ParentEmail,
		StudentID: student.ID,
		CreatedAt: now,
	}
	if err := s.backend.Set(ctx, ColParents, parentUID, parent); err != nil {
		return "", false, err
	}
	return parentUID, false, nil
}

type RegisterStaffInput struct {
	FullName        string      `validate:"required"`
	Email           string      `validate:"required,email"`
	Phone           string      `validate:"omitempty,min=7"`
	Position        string      `validate:"required"`
	AssignedClasses []string    `validate:"omitempty,dive,required"`
	Role            models.Role `validate:"required,oneof=SUPER_ADMIN SPECIALIST ADMIN_SUPPORT"`
}

// RegisterStaff validates email uniqueness against existing profiles
// before creating any account, then writes the credential and the two
// documents, releasing the secondary session when done.
func (s *Store) RegisterStaff(ctx context.Context, input RegisterStaffInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		return "", s.fail("register-staff", "Registration form is incomplete.", err)
	}
	email := strings.ToLower(input.Email)

	existing, err := s.backend.QueryEq(ctx, ColUsers, "email", email)
	if err != nil {
		return "", s.fail("register-staff", "Could not verify the email address.", err)
	}
	if len(existing) > 0 {
		return "", s.fail("register-staff", "An account with this email already exists.", ErrEmailExists)
	}

	defer func() {
		if err := s.backend.ReleaseSecondary(ctx); err != nil {
			log.Printf("[register] secondary session release failed: %v", err)
		}
	}()

	uid, err := s.backend.CreateAccount(ctx, email, defaultAccountPassword)
	if err != nil {
		if errors.Is(err, backend.ErrEmailInUse) {
			return "", s.fail("register-staff", "An account with this email already exists.", ErrEmailExists)
		}
		return "", s.fail("register-staff", "Could not create the staff account.", err)
	}

	now := time.Now()
	staff := models.Staff{
		ID:              uid,
		FullName:        input.FullName,
		Email:           email,
		Phone:           input.Phone,
		Position:        input.Position,
		AssignedClasses: input.AssignedClasses,
		Role:            input.Role,
		CreatedAt:       now,
	}
	if err := s.backend.Set(ctx, ColStaff, uid, staff); err != nil {
		return "", s.fail("register-staff", "Could not save the staff record.", err)
	}
	profile := models.User{
		ID:        uid,
		Name:      input.FullName,
		Email:     email,
		Role:      input.Role,
		CreatedAt: now,
	}
	if err := s.backend.Set(ctx, ColUsers, uid, profile); err != nil {
		return "", s.fail("register-staff", "Could not save the staff profile.", err)
	}

	s.logAction(ctx, "staff.registered", map[string]string{"staffId": uid, "position": input.Position})
	s.Notify(NotifySuccess, "Staff account created.")
	return uid, nil
}
