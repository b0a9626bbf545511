package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
	"github.com/mdemir/coursedesk/internal/pkg/auth"
)

func newAuthService(f *fakeStore) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursedesk-test",
	})
	return NewAuthService(fakeProfessors{f}, fakeStudents{f}, jwtService, zerolog.Nop())
}

func TestProfessorRegistrationAndApprovalGate(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newAuthService(f)

	prof, err := svc.RegisterProfessor(ctx, &dto.RegisterProfessorRequest{
		Username:      "turing",
		Name:          "Alan Turing",
		Email:         "turing@example.edu",
		Qualification: "PhD",
		Department:    "CS",
		Password:      "enigma123",
	})
	require.NoError(t, err)
	assert.False(t, prof.Approved())
	assert.NotEqual(t, "enigma123", prof.Password)

	// Pending registrations cannot log in
	_, err = svc.LoginProfessor(ctx, "turing", "enigma123")
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotApproved)

	require.NoError(t, fakeProfessors{f}.UpdateRole(ctx, prof.ID, models.RoleProfessor))

	resp, err := svc.LoginProfessor(ctx, "turing", "enigma123")
	require.NoError(t, err)
	assert.Equal(t, prof.ID, resp.ID)
	assert.Equal(t, models.RoleProfessor, resp.Role)
	assert.Equal(t, "CS", resp.Department)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.LoginProfessor(ctx, "turing", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.LoginProfessor(ctx, "nobody", "enigma123")
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
}

func TestRegisterProfessorDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newAuthService(f)

	req := &dto.RegisterProfessorRequest{
		Username: "turing", Name: "Alan Turing", Email: "turing@example.edu",
		Department: "CS", Password: "enigma123",
	}
	_, err := svc.RegisterProfessor(ctx, req)
	require.NoError(t, err)

	_, err = svc.RegisterProfessor(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestStudentRegistrationAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newAuthService(f)

	st, err := svc.RegisterStudent(ctx, &dto.RegisterStudentRequest{
		Username: "ada",
		Name:     "Ada Lovelace",
		Email:    "ada@example.edu",
		Password: "analytical",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "analytical", st.Password)

	resp, err := svc.LoginStudent(ctx, "ada", "analytical")
	require.NoError(t, err)
	assert.Equal(t, st.ID, resp.ID)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.LoginStudent(ctx, "ada", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.LoginStudent(ctx, "nobody", "analytical")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestApproveProfessor(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	profSvc := NewProfessorService(fakeProfessors{f})

	pending := f.addProfessor("newhire", "")

	assert.Error(t, profSvc.Approve(ctx, pending.ID, "dean"))
	require.NoError(t, profSvc.Approve(ctx, pending.ID, models.RoleProfessor))

	got, err := profSvc.GetProfessor(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, got.Approved())

	pendingList, err := profSvc.ListPending(ctx, "CS")
	require.NoError(t, err)
	assert.Empty(t, pendingList)
}
