package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// EnrollmentRepository handles roster membership rows. Join and drop
// are row-level add/remove operations rather than wholesale roster
// replaces, so concurrent changes to different students never collide.
type EnrollmentRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, timeout: defaultQueryTimeout}
}

// IsEnrolled reports whether the student has an active enrollment
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var active bool
	err := r.db.QueryRow(ctx,
		`SELECT active FROM enrollments WHERE course_id = $1 AND student_id = $2`,
		courseID, studentID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapStoreError(fmt.Errorf("error checking enrollment: %w", err))
	}

	return active, nil
}

// EverEnrolled reports whether any enrollment row exists for the pair,
// active or not. Grade rows may reference dropped students.
func (r *EnrollmentRepository) EverEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1 AND student_id = $2)`,
		courseID, studentID).Scan(&exists)
	if err != nil {
		return false, mapStoreError(fmt.Errorf("error checking enrollment history: %w", err))
	}

	return exists, nil
}

// Join adds the student to the course roster. Fails with
// ErrAlreadyEnrolled when an active row exists; reactivates a dropped
// row otherwise. Bumps the course version in the same transaction so
// wholesale roster replaces observe the change.
func (r *EnrollmentRepository) Join(ctx context.Context, courseID, studentID int64) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	var active bool
	err = tx.QueryRow(ctx,
		`SELECT active FROM enrollments WHERE course_id = $1 AND student_id = $2 FOR UPDATE`,
		courseID, studentID).Scan(&active)
	switch {
	case err == nil && active:
		return apperrors.ErrAlreadyEnrolled
	case err == nil:
		if _, err := tx.Exec(ctx,
			`UPDATE enrollments SET active = TRUE, joined_at = NOW() WHERE course_id = $1 AND student_id = $2`,
			courseID, studentID); err != nil {
			return mapStoreError(fmt.Errorf("error reactivating enrollment: %w", err))
		}
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := tx.Exec(ctx,
			`INSERT INTO enrollments (course_id, student_id, active) VALUES ($1, $2, TRUE)`,
			courseID, studentID); err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.ErrStudentNotFound
			}
			if isUniqueViolation(err, "enrollments_course_student_unique") {
				return apperrors.ErrAlreadyEnrolled
			}
			return mapStoreError(fmt.Errorf("error creating enrollment: %w", err))
		}
	default:
		return mapStoreError(fmt.Errorf("error checking enrollment: %w", err))
	}

	if err := r.bumpCourseVersion(ctx, tx, courseID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStoreError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// Drop removes the student from the active roster. The enrollment row
// is kept inactive so existing grade history stays referenced.
func (r *EnrollmentRepository) Drop(ctx context.Context, courseID, studentID int64) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE enrollments SET active = FALSE WHERE course_id = $1 AND student_id = $2 AND active`,
		courseID, studentID)
	if err != nil {
		return mapStoreError(fmt.Errorf("error dropping enrollment: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	if err := r.bumpCourseVersion(ctx, tx, courseID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStoreError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// bumpCourseVersion invalidates any version token read before this
// roster change
func (r *EnrollmentRepository) bumpCourseVersion(ctx context.Context, tx pgx.Tx, courseID int64) error {
	tag, err := tx.Exec(ctx,
		`UPDATE courses SET version = version + 1 WHERE id = $1`, courseID)
	if err != nil {
		return mapStoreError(fmt.Errorf("error updating course version: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
