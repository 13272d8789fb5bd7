package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightsteps/backend/internal/backend"
	"brightsteps/backend/internal/models"
)

func newTestStore(t *testing.T) (*Store, *backend.Memory) {
	t.Helper()
	mem := backend.NewMemory()
	s := New(mem)
	s.toastDuration = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, s.Start(ctx))
	t.Cleanup(s.Stop)
	return s, mem
}

func seedUser(t *testing.T, mem *backend.Memory, email, password string, role models.Role) string {
	t.Helper()
	uid := mem.SeedAccount(email, password)
	require.NoError(t, mem.Set(context.Background(), ColUsers, uid, models.User{
		ID:    uid,
		Name:  "Test " + string(role),
		Email: email,
		Role:  role,
	}))
	return uid
}

func signInAdmin(t *testing.T, s *Store, mem *backend.Memory) *models.User {
	t.Helper()
	seedUser(t, mem, "admin@brightsteps.ac", "secret123", models.RoleSuperAdmin)
	user, err := s.Login(context.Background(), "admin@brightsteps.ac", "secret123", models.RoleSuperAdmin)
	require.NoError(t, err)
	return user
}

func TestLoginEstablishesSession(t *testing.T) {
	s, mem := newTestStore(t)
	user := signInAdmin(t, s, mem)

	assert.Equal(t, models.RoleSuperAdmin, user.Role)
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, ViewApp, s.ActiveView())
}

func TestLoginRoleMismatchSignsBackOut(t *testing.T) {
	s, mem := newTestStore(t)
	seedUser(t, mem, "parent@example.com", "secret123", models.RoleParent)

	_, err := s.Login(context.Background(), "parent@example.com", "secret123", models.RoleSpecialist)
	require.ErrorIs(t, err, ErrRoleMismatch)
	assert.False(t, s.IsLoggedIn())
	assert.Nil(t, s.CurrentUser())
}

func TestLoginInvalidCredentials(t *testing.T) {
	s, mem := newTestStore(t)
	seedUser(t, mem, "parent@example.com", "secret123", models.RoleParent)

	_, err := s.Login(context.Background(), "parent@example.com", "wrong", models.RoleParent)
	require.ErrorIs(t, err, backend.ErrInvalidCredentials)
	assert.False(t, s.IsLoggedIn())
}

func TestLoginOrphanedCredential(t *testing.T) {
	s, mem := newTestStore(t)
	mem.SeedAccount("ghost@example.com", "secret123")

	_, err := s.Login(context.Background(), "ghost@example.com", "secret123", models.RoleParent)
	require.ErrorIs(t, err, ErrProfileNotFound)
	assert.False(t, s.IsLoggedIn())
}

func TestBackendSignOutClearsSession(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)
	require.True(t, s.IsLoggedIn())

	// Cross-tab logout arrives as a backend state change, not a store call.
	require.NoError(t, mem.SignOut(context.Background()))
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, ViewLanding, s.ActiveView())
}

func TestRegisterStudentCreatesParentAndReleasesSecondary(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)

	result, err := s.RegisterStudent(context.Background(), RegisterStudentInput{
		FullName:      "Amani Njoroge",
		DateOfBirth:   "2019-04-02",
		AssignedClass: "Sunflower",
		ParentName:    "Grace Njoroge",
		ParentEmail:   "grace@example.com",
		ParentPhone:   "0712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "BS-0001", result.StudentID)
	assert.False(t, result.ParentReused)
	assert.False(t, mem.SecondaryActive(), "secondary session must be released")

	students := s.Students()
	require.Len(t, students, 1)
	assert.Equal(t, "Amani Njoroge", students[0].FullName)
	assert.NotEmpty(t, students[0].ParentID)

	parents := s.Parents()
	require.Len(t, parents, 1)
	assert.Equal(t, "grace@example.com", parents[0].Email)
	assert.Equal(t, "BS-0001", parents[0].StudentID)
}

func TestRegisterStudentReusesExistingParent(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)
	existingUID := seedUser(t, mem, "grace@example.com", "secret123", models.RoleParent)

	result, err := s.RegisterStudent(context.Background(), RegisterStudentInput{
		FullName:      "Amani Njoroge",
		DateOfBirth:   "2019-04-02",
		AssignedClass: "Sunflower",
		ParentName:    "Grace Njoroge",
		ParentEmail:   "grace@example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.ParentReused)
	assert.Empty(t, s.Parents(), "no new parent document when the email already exists")

	students := s.Students()
	require.Len(t, students, 1)
	assert.Equal(t, existingUID, students[0].ParentID)

	var informational bool
	for _, notification := range s.Notifications() {
		if notification.Kind == NotifyInfo {
			informational = true
		}
		assert.NotEqual(t, NotifyError, notification.Kind)
	}
	assert.True(t, informational, "caller gets an informational notice about the reuse")
}

func TestRegisterStaffDuplicateEmailFailsFast(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)
	seedUser(t, mem, "teacher@example.com", "secret123", models.RoleSpecialist)

	_, err := s.RegisterStaff(context.Background(), RegisterStaffInput{
		FullName: "New Teacher",
		Email:    "teacher@example.com",
		Position: "Speech Therapist",
		Role:     models.RoleSpecialist,
	})
	require.ErrorIs(t, err, ErrEmailExists)
	assert.Empty(t, s.Staff(), "no staff document written on duplicate email")
}

func TestRegisterStaffCreatesAccounts(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)

	staffID, err := s.RegisterStaff(context.Background(), RegisterStaffInput{
		FullName:        "Joy Wambui",
		Email:           "joy@example.com",
		Position:        "Occupational Therapist",
		AssignedClasses: []string{"Sunflower"},
		Role:            models.RoleSpecialist,
	})
	require.NoError(t, err)
	require.NotEmpty(t, staffID)
	assert.False(t, mem.SecondaryActive())

	staff := s.Staff()
	require.Len(t, staff, 1)
	assert.Equal(t, "Occupational Therapist", staff[0].Position)

	logs := s.SystemLogs()
	require.NotEmpty(t, logs)
	assert.Equal(t, "staff.registered", logs[0].Action)
}

func TestUpdateSettingsMergesAndBroadcastsTermChange(t *testing.T) {
	s, mem := newTestStore(t)
	signInAdmin(t, s, mem)

	fees := 15000.0
	require.NoError(t, s.UpdateSettings(context.Background(), SettingsPatch{FeesAmount: &fees}))
	assert.Empty(t, s.Notices(), "no broadcast for unrelated settings fields")
	assert.Equal(t, 15000.0, s.Settings().FeesAmount)

	termDate := "2026-01-05"
	require.NoError(t, s.UpdateSettings(context.Background(), SettingsPatch{NextTermStartDate: &termDate}))

	notices := s.Notices()
	require.Len(t, notices, 1, "exactly one broadcast notice for the term change")
	assert.Equal(t, models.TargetAll, notices[0].Target)

	// The earlier merge must have survived: merge, never overwrite.
	assert.Equal(t, 15000.0, s.Settings().FeesAmount)
	assert.Equal(t, "2026-01-05", s.Settings().NextTermStartDate)

	// Same date again is not a change.
	require.NoError(t, s.UpdateSettings(context.Background(), SettingsPatch{NextTermStartDate: &termDate}))
	assert.Len(t, s.Notices(), 1)
}

func TestNotificationsExpire(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.Notify(NotifyInfo, "hello")
	require.Len(t, s.Notifications(), 1)
	assert.Equal(t, id, s.Notifications()[0].ID)

	assert.Eventually(t, func() bool {
		return len(s.Notifications()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestWatchReceivesCollectionEmissions(t *testing.T) {
	s, mem := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Watch(ctx)

	require.NoError(t, mem.Set(context.Background(), ColShopItems, "item-1", models.ShopItem{ID: "item-1", Name: "Polo Shirt"}))

	select {
	case collection := <-ch:
		assert.Equal(t, ColShopItems, collection)
	case <-time.After(time.Second):
		t.Fatal("no emission observed")
	}
}
