package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"exam_scheduler/internal/model"
)

func newAuthFixture(t *testing.T) (*AuthService, *memStore) {
	t.Helper()
	wrongPasswordDelay = 0

	store := newMemStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	store.teachers["T1"] = &model.Teacher{ID: "T1", Name: "Grace", Surname: "Hopper", PasswordHash: string(hash)}

	svc := NewAuthService(store, newMemSessionStore(), 30*time.Minute, zap.NewNop())
	return svc, store
}

func TestLoginAndResolvePrincipal(t *testing.T) {
	svc, _ := newAuthFixture(t)

	token, err := svc.Login(context.Background(), "T1", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := svc.PrincipalID(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "T1", principal)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "T1", "nope")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginUnknownTeacher(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "T9", "secret")
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	token, err := svc.Login(context.Background(), "T1", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	principal, err := svc.PrincipalID(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, principal)
}

func TestPrincipalIDEmptyToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	principal, err := svc.PrincipalID(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, principal)
}

func TestStudentProfileAndExams(t *testing.T) {
	store := newMemStore()
	store.addStudent("S1", "Ada", "Archer")
	store.addCourse("C1", "Databases", "T1")
	store.addReservedSlot("C1", "2024-06-01", "09:00", 20, "2024-06-01", "S1")
	svc := NewUserService(store, store, store, zap.NewNop())

	student, err := svc.StudentProfile(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", student.Name)

	_, err = svc.StudentProfile(context.Background(), "S9")
	assert.ErrorIs(t, err, ErrStudentNotFound)

	exams, err := svc.StudentExams(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "Databases", exams[0].CourseName)
	assert.Nil(t, exams[0].Mark)
}

func TestTeacherProfile(t *testing.T) {
	store := newMemStore()
	store.teachers["T1"] = &model.Teacher{ID: "T1", Name: "Grace", Surname: "Hopper"}
	store.addCourse("C1", "Databases", "T1")
	svc := NewUserService(store, store, store, zap.NewNop())

	teacher, course, err := svc.TeacherProfile(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "Grace", teacher.Name)
	require.NotNil(t, course)
	assert.Equal(t, "C1", course.ID)

	_, _, err = svc.TeacherProfile(context.Background(), "T9")
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}
