package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

func newEnrollmentService(f *fakeStore) *EnrollmentService {
	return NewEnrollmentService(f, fakeStudents{f}, f)
}

func TestJoinAndDrop(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newEnrollmentService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	st := f.addStudent("ada")
	course := f.addCourse("Databases", prof.ID)

	require.NoError(t, svc.Join(ctx, course.ID, st.ID))
	enrolled, err := svc.IsEnrolled(ctx, course.ID, st.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	// Joining twice is a conflict, not a silent no-op
	assert.ErrorIs(t, svc.Join(ctx, course.ID, st.ID), apperrors.ErrAlreadyEnrolled)

	require.NoError(t, svc.Drop(ctx, course.ID, st.ID))
	enrolled, err = svc.IsEnrolled(ctx, course.ID, st.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	// Dropping a student who is not on the roster fails the same way
	assert.ErrorIs(t, svc.Drop(ctx, course.ID, st.ID), apperrors.ErrNotEnrolled)

	// Rejoining after a drop reactivates the membership
	require.NoError(t, svc.Join(ctx, course.ID, st.ID))
	enrolled, err = svc.IsEnrolled(ctx, course.ID, st.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestJoinUnknownStudentOrCourse(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newEnrollmentService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	st := f.addStudent("ada")
	course := f.addCourse("Databases", prof.ID)

	assert.ErrorIs(t, svc.Join(ctx, course.ID, 999), apperrors.ErrStudentNotFound)
	assert.ErrorIs(t, svc.Join(ctx, 999, st.ID), apperrors.ErrCourseNotFound)
}

// Row-level joins and drops for different students must compose: a
// join of S and a drop of B against roster {A, B} lands on {A, S}
// regardless of order.
func TestJoinAndDropDifferentStudentsCompose(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newEnrollmentService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	a := f.addStudent("ada")
	b := f.addStudent("barbara")
	s := f.addStudent("sophie")
	course := f.addCourse("Databases", prof.ID)
	require.NoError(t, svc.Join(ctx, course.ID, a.ID))
	require.NoError(t, svc.Join(ctx, course.ID, b.ID))

	require.NoError(t, svc.Join(ctx, course.ID, s.ID))
	require.NoError(t, svc.Drop(ctx, course.ID, b.ID))

	roster, err := f.RosterStudents(ctx, course.ID)
	require.NoError(t, err)
	ids := make(map[int64]bool, len(roster))
	for _, st := range roster {
		ids[st.ID] = true
	}
	assert.Equal(t, map[int64]bool{a.ID: true, s.ID: true}, ids)
}

// Every join and drop moves the course version forward so wholesale
// roster replaces racing against row-level changes fail stale.
func TestJoinBumpsCourseVersion(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newEnrollmentService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	st := f.addStudent("ada")
	course := f.addCourse("Databases", prof.ID)

	before := f.courses[course.ID].Version
	require.NoError(t, svc.Join(ctx, course.ID, st.ID))
	assert.Equal(t, before+1, f.courses[course.ID].Version)

	require.NoError(t, svc.Drop(ctx, course.ID, st.ID))
	assert.Equal(t, before+2, f.courses[course.ID].Version)
}
