package services

import (
	"context"
	"fmt"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// GradeService handles grade ledger operations. The ledger treats
// roster membership as an external authority: it never decides who is
// enrolled, it only records marks for students the enrollments table
// has (or had) on the course.
type GradeService struct {
	grades      GradeStore
	courses     CourseStore
	enrollments EnrollmentStore
}

// NewGradeService creates a new grade service instance
func NewGradeService(grades GradeStore, courses CourseStore, enrollments EnrollmentStore) *GradeService {
	return &GradeService{
		grades:      grades,
		courses:     courses,
		enrollments: enrollments,
	}
}

// GetLedger retrieves the ledger for a course. ErrLedgerNotFound
// signals "no record yet" and the caller is expected to seed one.
func (s *GradeService) GetLedger(ctx context.Context, courseID int64) (*models.GradeLedger, error) {
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}
	return s.grades.GetByCourse(ctx, courseID)
}

// GetStudentMarks aggregates the student's mark rows across all
// courses. An empty result is not an error.
func (s *GradeService) GetStudentMarks(ctx context.Context, studentID int64) ([]dto.StudentMark, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}

	marks, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating student marks: %w", err)
	}

	out := make([]dto.StudentMark, 0, len(marks))
	for _, sm := range marks {
		out = append(out, dto.StudentMark{
			CourseID:   sm.CourseID,
			CourseName: sm.CourseName,
			Test:       sm.Row.Test,
			Seminar:    sm.Row.Seminar,
			Assignment: sm.Row.Assignment,
			Attendance: sm.Row.Attendance,
			Total:      sm.Row.Total,
		})
	}

	return out, nil
}

// CreateLedger creates the ledger for a course. With no input rows the
// ledger is seeded from the current active roster, one zero-valued row
// per student. A second ledger for the same course is rejected.
func (s *GradeService) CreateLedger(ctx context.Context, courseID int64, inputs []dto.MarkRowInput) (*models.GradeLedger, error) {
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	var rows []*models.MarkRow
	var err error
	if len(inputs) == 0 {
		rows, err = s.seedFromRoster(ctx, courseID)
	} else {
		rows, err = s.buildRows(ctx, courseID, inputs)
	}
	if err != nil {
		return nil, err
	}

	ledger := &models.GradeLedger{
		CourseID: courseID,
		Marks:    rows,
	}

	// The store enforces one-ledger-per-course; concurrent creates
	// cannot both succeed
	if err := s.grades.Create(ctx, ledger); err != nil {
		return nil, err
	}

	return ledger, nil
}

// ReplaceLedger replaces the mark rows of the course's ledger
// wholesale. LedgerID must match the ledger that owns the course and
// version must match the version the caller read.
func (s *GradeService) ReplaceLedger(ctx context.Context, courseID, ledgerID, version int64, inputs []dto.MarkRowInput) error {
	if courseID <= 0 {
		return apperrors.NewValidationError("invalid course ID")
	}
	if ledgerID <= 0 {
		return apperrors.NewValidationError("invalid ledger ID")
	}
	if version <= 0 {
		return apperrors.NewValidationError("version is required")
	}
	if len(inputs) == 0 {
		return apperrors.NewValidationError("marks are required")
	}

	current, err := s.grades.GetByCourse(ctx, courseID)
	if err != nil {
		return err
	}

	// Another ledger claiming this course means the caller's id is for
	// a different course's ledger
	if current.ID != ledgerID {
		return apperrors.ErrLedgerAlreadyExists
	}

	rows, err := s.buildRows(ctx, courseID, inputs)
	if err != nil {
		return err
	}

	return s.grades.Replace(ctx, ledgerID, version, rows)
}

// DeleteLedger removes the course's ledger and all its mark rows
func (s *GradeService) DeleteLedger(ctx context.Context, courseID int64) error {
	if courseID <= 0 {
		return apperrors.NewValidationError("invalid course ID")
	}
	return s.grades.Delete(ctx, courseID)
}

// seedFromRoster builds one zero-valued row per actively enrolled
// student
func (s *GradeService) seedFromRoster(ctx context.Context, courseID int64) ([]*models.MarkRow, error) {
	students, err := s.courses.RosterStudents(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error reading roster for seeding: %w", err)
	}
	if len(students) == 0 {
		return nil, apperrors.NewValidationError("course has no enrolled students to seed marks for")
	}

	rows := make([]*models.MarkRow, 0, len(students))
	for _, st := range students {
		rows = append(rows, &models.MarkRow{
			StudentID: st.ID,
			Total:     0,
		})
	}
	return rows, nil
}

// buildRows validates caller-supplied rows and derives their totals.
// Totals from the caller are ignored: the derived value is the only
// one ever stored, so it cannot drift from the components.
func (s *GradeService) buildRows(ctx context.Context, courseID int64, inputs []dto.MarkRowInput) ([]*models.MarkRow, error) {
	seen := make(map[int64]struct{}, len(inputs))
	rows := make([]*models.MarkRow, 0, len(inputs))

	for _, in := range inputs {
		if in.StudentID <= 0 {
			return nil, apperrors.NewValidationError("mark row missing student ID")
		}
		if _, dup := seen[in.StudentID]; dup {
			return nil, fmt.Errorf("%w: student %d", apperrors.ErrDuplicateMarkRow, in.StudentID)
		}
		seen[in.StudentID] = struct{}{}

		row := &models.MarkRow{
			StudentID:  in.StudentID,
			Test:       in.Test,
			Seminar:    in.Seminar,
			Assignment: in.Assignment,
			Attendance: in.Attendance,
		}
		if !row.ComponentsInRange() {
			return nil, fmt.Errorf("%w: student %d", apperrors.ErrMarkOutOfRange, in.StudentID)
		}
		row.Total = row.ComputeTotal()

		// Mark rows may only reference students with an enrollment
		// record on this course, active or dropped
		ever, err := s.enrollments.EverEnrolled(ctx, courseID, in.StudentID)
		if err != nil {
			return nil, fmt.Errorf("error checking enrollment for student %d: %w", in.StudentID, err)
		}
		if !ever {
			return nil, fmt.Errorf("%w: student %d has no enrollment on course %d", apperrors.ErrNotEnrolled, in.StudentID, courseID)
		}

		rows = append(rows, row)
	}

	return rows, nil
}
