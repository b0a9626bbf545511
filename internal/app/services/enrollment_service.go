package services

import (
	"context"

	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// EnrollmentService mediates between "a student wants to join or drop
// a course" and the course registry. Joins and drops are individually
// idempotent row-level operations, not wholesale roster replaces, so
// two concurrent requests touching different students cannot lose each
// other's update.
type EnrollmentService struct {
	courses     CourseStore
	students    StudentStore
	enrollments EnrollmentStore
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(courses CourseStore, students StudentStore, enrollments EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{
		courses:     courses,
		students:    students,
		enrollments: enrollments,
	}
}

// Join enrolls the student in the course. Fails with
// ErrAlreadyEnrolled when the student is already on the active roster.
func (s *EnrollmentService) Join(ctx context.Context, courseID, studentID int64) error {
	if courseID <= 0 {
		return apperrors.NewValidationError("invalid course ID")
	}
	if studentID <= 0 {
		return apperrors.NewValidationError("invalid student ID")
	}

	// Membership must never reference an unknown student
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return err
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return err
	}

	return s.enrollments.Join(ctx, courseID, studentID)
}

// Drop removes the student from the active roster. Any existing grade
// row is retained as historical record; ledger reads flag the student
// as no longer enrolled instead of deleting the marks.
func (s *EnrollmentService) Drop(ctx context.Context, courseID, studentID int64) error {
	if courseID <= 0 {
		return apperrors.NewValidationError("invalid course ID")
	}
	if studentID <= 0 {
		return apperrors.NewValidationError("invalid student ID")
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return err
	}

	return s.enrollments.Drop(ctx, courseID, studentID)
}

// IsEnrolled reports whether the student is on the course's active
// roster. Pure read; the result is stale the moment it returns and
// callers must not cache it across writes.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	if courseID <= 0 || studentID <= 0 {
		return false, apperrors.NewValidationError("invalid course or student ID")
	}
	return s.enrollments.IsEnrolled(ctx, courseID, studentID)
}
