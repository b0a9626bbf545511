package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

func newCourseService(f *fakeStore) *CourseService {
	return NewCourseService(f, fakeProfessors{f}, fakeStudents{f}, fakeGrades{f})
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newCourseService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	s1 := f.addStudent("ada")
	s2 := f.addStudent("grace")

	course := &models.Course{
		Department: "CS", Semester: "fall", Year: 2026,
		Name: "Databases", ProfessorID: prof.ID,
	}
	require.NoError(t, svc.CreateCourse(ctx, course, []int64{s1.ID, s2.ID}))
	assert.NotZero(t, course.ID)

	roster, err := svc.GetRosterNames(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestCreateCourseRejectsUnapprovedProfessor(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newCourseService(f)

	pending := f.addProfessor("newhire", "")
	course := &models.Course{
		Department: "CS", Semester: "fall", Year: 2026,
		Name: "Databases", ProfessorID: pending.ID,
	}

	err := svc.CreateCourse(ctx, course, nil)
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotApproved)
}

func TestCreateCourseRejectsDuplicateOffering(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newCourseService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	f.addCourse("Databases", prof.ID)

	dup := &models.Course{
		Department: "CS", Semester: "fall", Year: 2026,
		Name: "Databases", ProfessorID: prof.ID,
	}
	err := svc.CreateCourse(ctx, dup, nil)
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
}

func TestCreateCourseRejectsUnknownRosterStudent(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newCourseService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	course := &models.Course{
		Department: "CS", Semester: "fall", Year: 2026,
		Name: "Databases", ProfessorID: prof.ID,
	}

	err := svc.CreateCourse(ctx, course, []int64{999})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestReplaceRoster(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newCourseService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	s1 := f.addStudent("ada")
	s2 := f.addStudent("grace")
	course := f.addCourse("Databases", prof.ID)

	require.NoError(t, svc.ReplaceRoster(ctx, course.ID, []int64{s1.ID}, 1))

	// Version bumped; replacing with the old version must fail
	err := svc.ReplaceRoster(ctx, course.ID, []int64{s2.ID}, 1)
	assert.ErrorIs(t, err, apperrors.ErrStaleVersion)

	require.NoError(t, svc.ReplaceRoster(ctx, course.ID, []int64{s2.ID}, 2))
	roster, err := svc.GetRosterNames(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, s2.ID, roster[0].ID)
}

func TestReplaceRosterEmptyClearsCourse(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newCourseService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	s1 := f.addStudent("ada")
	course := f.addCourse("Databases", prof.ID)
	require.NoError(t, f.Join(ctx, course.ID, s1.ID))

	require.NoError(t, svc.ReplaceRoster(ctx, course.ID, []int64{}, 2))

	roster, err := svc.GetRosterNames(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestDeleteCourseRejectedWhileLedgerExists(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newCourseService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	course := f.addCourse("Databases", prof.ID)
	f.ledgers[course.ID] = &models.GradeLedger{ID: f.id(), CourseID: course.ID, Version: 1}

	err := svc.DeleteCourse(ctx, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseHasGrades)

	delete(f.ledgers, course.ID)
	require.NoError(t, svc.DeleteCourse(ctx, course.ID))

	_, err = svc.GetCourse(ctx, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestListAllCoursesAnnotatesJoined(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newCourseService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	st := f.addStudent("ada")
	joined := f.addCourse("Databases", prof.ID)
	f.addCourse("Networks", prof.ID)
	require.NoError(t, f.Join(ctx, joined.ID, st.ID))

	listings, err := svc.ListAllCourses(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	for _, l := range listings {
		assert.Equal(t, l.ID == joined.ID, l.Joined)
	}

	mine, err := svc.ListCoursesForStudent(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, joined.ID, mine[0].ID)
}
