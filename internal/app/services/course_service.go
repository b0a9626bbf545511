package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// CourseService handles course registry operations
type CourseService struct {
	courses    CourseStore
	professors ProfessorStore
	students   StudentStore
	grades     GradeStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courses CourseStore, professors ProfessorStore, students StudentStore, grades GradeStore) *CourseService {
	return &CourseService{
		courses:    courses,
		professors: professors,
		students:   students,
		grades:     grades,
	}
}

// validateCourse validates course data before database operations
func (s *CourseService) validateCourse(course *models.Course) error {
	if course == nil {
		return apperrors.NewValidationError("course is nil")
	}
	if strings.TrimSpace(course.Department) == "" {
		return apperrors.NewValidationError("department cannot be empty")
	}
	if strings.TrimSpace(course.Semester) == "" {
		return apperrors.NewValidationError("semester cannot be empty")
	}
	if course.Year <= 0 {
		return apperrors.NewValidationError("year must be positive")
	}
	if strings.TrimSpace(course.Name) == "" {
		return apperrors.NewValidationError("course name cannot be empty")
	}
	if course.ProfessorID <= 0 {
		return apperrors.NewValidationError("professor is required")
	}
	return nil
}

// CreateCourse creates a new course with an optional initial roster.
// The assigned professor must exist and be approved; an identical
// offering tuple is rejected as a duplicate.
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course, studentIDs []int64) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}

	professor, err := s.professors.GetByID(ctx, course.ProfessorID)
	if err != nil {
		return err
	}
	if !professor.Approved() {
		return apperrors.ErrProfessorNotApproved
	}

	if err := s.checkRosterStudents(ctx, studentIDs); err != nil {
		return err
	}

	exists, err := s.courses.ExistsDuplicate(ctx, course.Department, course.Name, course.Semester, course.Year, course.ProfessorID)
	if err != nil {
		return fmt.Errorf("error checking course duplicate: %w", err)
	}
	if exists {
		return apperrors.ErrCourseAlreadyExists
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return err
	}

	if len(studentIDs) > 0 {
		if err := s.courses.SetRoster(ctx, course.ID, dedupeIDs(studentIDs), course.Version); err != nil {
			return fmt.Errorf("error enrolling initial roster: %w", err)
		}
	}

	return nil
}

// GetCourse retrieves a course with the professor and roster resolved
// to display names
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	professor, err := s.professors.GetByID(ctx, course.ProfessorID)
	if err == nil {
		course.Professor = professor
	}

	students, err := s.courses.RosterStudents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error resolving roster: %w", err)
	}
	course.Students = students

	return course, nil
}

// ListCoursesForProfessor retrieves the professor's courses ordered by
// creation, rosters omitted
func (s *CourseService) ListCoursesForProfessor(ctx context.Context, professorID int64) ([]*models.Course, error) {
	if professorID <= 0 {
		return nil, apperrors.NewValidationError("invalid professor ID")
	}
	return s.courses.ListByProfessor(ctx, professorID)
}

// ListCoursesForStudent retrieves only the courses the student is
// actively enrolled in
func (s *CourseService) ListCoursesForStudent(ctx context.Context, studentID int64) ([]*models.CourseListing, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}
	return s.courses.ListJoined(ctx, studentID)
}

// ListAllCourses retrieves every course annotated with the student's
// joined flag, recomputed from current enrollments on each call
func (s *CourseService) ListAllCourses(ctx context.Context, studentID int64) ([]*models.CourseListing, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}
	return s.courses.ListWithJoined(ctx, studentID)
}

// GetRosterNames retrieves the actively enrolled students of a course
func (s *CourseService) GetRosterNames(ctx context.Context, courseID int64) ([]*models.Student, error) {
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	return s.courses.RosterStudents(ctx, courseID)
}

// ReplaceRoster replaces the roster wholesale. The caller supplies the
// course version it read; the write fails with ErrStaleVersion when a
// concurrent change got there first.
func (s *CourseService) ReplaceRoster(ctx context.Context, courseID int64, studentIDs []int64, version int64) error {
	if courseID <= 0 {
		return apperrors.NewValidationError("invalid course ID")
	}
	if studentIDs == nil {
		return apperrors.NewValidationError("students are required")
	}
	if version <= 0 {
		return apperrors.NewValidationError("version is required")
	}

	if err := s.checkRosterStudents(ctx, studentIDs); err != nil {
		return err
	}

	return s.courses.SetRoster(ctx, courseID, dedupeIDs(studentIDs), version)
}

// DeleteCourse removes a course. Deletion is rejected while a grade
// ledger exists so grade history is never orphaned or silently lost.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid course ID")
	}

	if _, err := s.courses.GetByID(ctx, id); err != nil {
		return err
	}

	hasLedger, err := s.grades.ExistsForCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking grade ledger: %w", err)
	}
	if hasLedger {
		return apperrors.ErrCourseHasGrades
	}

	return s.courses.Delete(ctx, id)
}

// checkRosterStudents rejects rosters referencing unknown students
func (s *CourseService) checkRosterStudents(ctx context.Context, studentIDs []int64) error {
	if len(studentIDs) == 0 {
		return nil
	}

	missing, err := s.students.MissingIDs(ctx, studentIDs)
	if err != nil {
		return fmt.Errorf("error checking roster students: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: unknown student ids %v", apperrors.ErrStudentNotFound, missing)
	}
	return nil
}

// dedupeIDs drops repeated ids while preserving order; the roster is a
// set
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// IsNotFound reports whether err is any of the not-found kinds
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrResourceNotFound) ||
		errors.Is(err, apperrors.ErrCourseNotFound) ||
		errors.Is(err, apperrors.ErrLedgerNotFound) ||
		errors.Is(err, apperrors.ErrProfessorNotFound) ||
		errors.Is(err, apperrors.ErrStudentNotFound) ||
		errors.Is(err, apperrors.ErrNoteNotFound)
}
