package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

func newGradeService(f *fakeStore) *GradeService {
	return NewGradeService(fakeGrades{f}, f, f)
}

func gradeFixture(t *testing.T, f *fakeStore) (*models.Course, *models.Student, *models.Student) {
	t.Helper()
	ctx := context.Background()
	prof := f.addProfessor("turing", models.RoleProfessor)
	a := f.addStudent("ada")
	b := f.addStudent("barbara")
	course := f.addCourse("Databases", prof.ID)
	require.NoError(t, f.Join(ctx, course.ID, a.ID))
	require.NoError(t, f.Join(ctx, course.ID, b.ID))
	return course, a, b
}

func TestCreateLedgerSeedsFromRoster(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newGradeService(f)
	course, _, _ := gradeFixture(t, f)

	ledger, err := svc.CreateLedger(ctx, course.ID, nil)
	require.NoError(t, err)
	require.Len(t, ledger.Marks, 2)
	for _, row := range ledger.Marks {
		assert.Zero(t, row.Total)
	}

	// Only one ledger per course, ever
	_, err = svc.CreateLedger(ctx, course.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrLedgerAlreadyExists)
}

func TestCreateLedgerRecomputesTotals(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newGradeService(f)
	course, a, b := gradeFixture(t, f)

	ledger, err := svc.CreateLedger(ctx, course.ID, []dto.MarkRowInput{
		{StudentID: a.ID, Test: 3, Seminar: 2, Assignment: 1, Attendance: 3},
		{StudentID: b.ID, Test: 1, Seminar: 1, Assignment: 0, Attendance: 2},
	})
	require.NoError(t, err)
	require.Len(t, ledger.Marks, 2)

	totals := map[int64]int{}
	for _, row := range ledger.Marks {
		totals[row.StudentID] = row.Total
	}
	assert.Equal(t, 9, totals[a.ID])
	assert.Equal(t, 4, totals[b.ID])
}

func TestCreateLedgerRejectsBadRows(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newGradeService(f)
	course, a, _ := gradeFixture(t, f)
	outsider := f.addStudent("mallory")

	_, err := svc.CreateLedger(ctx, course.ID, []dto.MarkRowInput{
		{StudentID: a.ID, Test: 4},
	})
	assert.ErrorIs(t, err, apperrors.ErrMarkOutOfRange)

	_, err = svc.CreateLedger(ctx, course.ID, []dto.MarkRowInput{
		{StudentID: a.ID, Test: -1},
	})
	assert.ErrorIs(t, err, apperrors.ErrMarkOutOfRange)

	_, err = svc.CreateLedger(ctx, course.ID, []dto.MarkRowInput{
		{StudentID: a.ID, Test: 1},
		{StudentID: a.ID, Test: 2},
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateMarkRow)

	// Mark rows may only reference students with an enrollment record
	_, err = svc.CreateLedger(ctx, course.ID, []dto.MarkRowInput{
		{StudentID: outsider.ID, Test: 1},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
}

func TestReplaceLedgerVersionGuard(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newGradeService(f)
	course, a, _ := gradeFixture(t, f)

	ledger, err := svc.CreateLedger(ctx, course.ID, nil)
	require.NoError(t, err)

	rows := []dto.MarkRowInput{{StudentID: a.ID, Test: 2, Seminar: 2, Assignment: 2, Attendance: 2}}
	require.NoError(t, svc.ReplaceLedger(ctx, course.ID, ledger.ID, ledger.Version, rows))

	// A second writer holding the old version loses
	err = svc.ReplaceLedger(ctx, course.ID, ledger.ID, ledger.Version, rows)
	assert.ErrorIs(t, err, apperrors.ErrStaleVersion)

	got, err := svc.GetLedger(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, got.Marks, 1)
	assert.Equal(t, 8, got.Marks[0].Total)
	assert.Equal(t, ledger.Version+1, got.Version)
}

func TestReplaceLedgerMismatchedID(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newGradeService(f)
	course, a, _ := gradeFixture(t, f)

	ledger, err := svc.CreateLedger(ctx, course.ID, nil)
	require.NoError(t, err)

	rows := []dto.MarkRowInput{{StudentID: a.ID, Test: 1}}
	err = svc.ReplaceLedger(ctx, course.ID, ledger.ID+100, ledger.Version, rows)
	assert.ErrorIs(t, err, apperrors.ErrLedgerAlreadyExists)
}

func TestDroppedStudentKeepsMarksFlaggedUnenrolled(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newGradeService(f)
	course, a, b := gradeFixture(t, f)

	_, err := svc.CreateLedger(ctx, course.ID, []dto.MarkRowInput{
		{StudentID: a.ID, Test: 3, Seminar: 3, Assignment: 3, Attendance: 3},
		{StudentID: b.ID, Test: 1},
	})
	require.NoError(t, err)

	require.NoError(t, f.Drop(ctx, course.ID, b.ID))

	got, err := svc.GetLedger(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, got.Marks, 2)
	for _, row := range got.Marks {
		assert.Equal(t, row.StudentID == a.ID, row.Enrolled)
	}
}

func TestGetStudentMarksAcrossCourses(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newGradeService(f)

	prof := f.addProfessor("turing", models.RoleProfessor)
	st := f.addStudent("ada")
	c1 := f.addCourse("Databases", prof.ID)
	c2 := f.addCourse("Networks", prof.ID)
	require.NoError(t, f.Join(ctx, c1.ID, st.ID))
	require.NoError(t, f.Join(ctx, c2.ID, st.ID))

	_, err := svc.CreateLedger(ctx, c1.ID, []dto.MarkRowInput{{StudentID: st.ID, Test: 3, Seminar: 1}})
	require.NoError(t, err)
	_, err = svc.CreateLedger(ctx, c2.ID, []dto.MarkRowInput{{StudentID: st.ID, Attendance: 2}})
	require.NoError(t, err)

	marks, err := svc.GetStudentMarks(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, marks, 2)

	byCourse := map[int64]dto.StudentMark{}
	for _, m := range marks {
		byCourse[m.CourseID] = m
	}
	assert.Equal(t, 4, byCourse[c1.ID].Total)
	assert.Equal(t, 2, byCourse[c2.ID].Total)

	// No ledgers anywhere is an empty list, not an error
	other := f.addStudent("grace")
	empty, err := svc.GetStudentMarks(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteLedger(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newGradeService(f)
	course, _, _ := gradeFixture(t, f)

	_, err := svc.CreateLedger(ctx, course.ID, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLedger(ctx, course.ID))
	_, err = svc.GetLedger(ctx, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrLedgerNotFound)

	assert.ErrorIs(t, svc.DeleteLedger(ctx, course.ID), apperrors.ErrLedgerNotFound)
}
