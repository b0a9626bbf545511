package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// GradeRepository handles database operations for grade ledgers and
// their mark rows
type GradeRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db, timeout: defaultQueryTimeout}
}

// GetByCourse retrieves the ledger for a course with all mark rows,
// each resolved to the student name and current enrollment flag
func (r *GradeRepository) GetByCourse(ctx context.Context, courseID int64) (*models.GradeLedger, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var ledger models.GradeLedger
	err := r.db.QueryRow(ctx,
		`SELECT id, course_id, version FROM grade_ledgers WHERE course_id = $1`,
		courseID).Scan(&ledger.ID, &ledger.CourseID, &ledger.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, mapStoreError(fmt.Errorf("error retrieving ledger: %w", err))
	}

	query := `
		SELECT m.id, m.ledger_id, m.student_id, m.test, m.seminar, m.assignment, m.attendance, m.total,
			s.name,
			COALESCE(e.active, FALSE)
		FROM mark_rows m
		JOIN students s ON s.id = m.student_id
		LEFT JOIN enrollments e ON e.course_id = $2 AND e.student_id = m.student_id
		WHERE m.ledger_id = $1
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, ledger.ID, courseID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.MarkRow
		if err := rows.Scan(
			&m.ID, &m.LedgerID, &m.StudentID,
			&m.Test, &m.Seminar, &m.Assignment, &m.Attendance, &m.Total,
			&m.StudentName, &m.Enrolled,
		); err != nil {
			return nil, err
		}
		ledger.Marks = append(ledger.Marks, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return &ledger, nil
}

// ExistsForCourse checks whether a ledger exists for a course
func (r *GradeRepository) ExistsForCourse(ctx context.Context, courseID int64) (bool, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM grade_ledgers WHERE course_id = $1)`,
		courseID).Scan(&exists)
	if err != nil {
		return false, mapStoreError(fmt.Errorf("error checking ledger existence: %w", err))
	}

	return exists, nil
}

// Create inserts a ledger and its mark rows in one transaction. The
// UNIQUE constraint on course_id makes concurrent creates safe: the
// second insert fails instead of both passing a pre-check.
func (r *GradeRepository) Create(ctx context.Context, ledger *models.GradeLedger) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO grade_ledgers (course_id) VALUES ($1) RETURNING id, version`,
		ledger.CourseID).Scan(&ledger.ID, &ledger.Version)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrLedgerAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return mapStoreError(fmt.Errorf("error creating ledger: %w", err))
	}

	if err := insertMarkRows(ctx, tx, ledger.ID, ledger.Marks); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStoreError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// Replace swaps the mark rows of an existing ledger wholesale, guarded
// by the ledger version
func (r *GradeRepository) Replace(ctx context.Context, ledgerID, version int64, marks []*models.MarkRow) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE grade_ledgers SET version = version + 1 WHERE id = $1 AND version = $2`,
		ledgerID, version)
	if err != nil {
		return mapStoreError(fmt.Errorf("error updating ledger version: %w", err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM grade_ledgers WHERE id = $1)`, ledgerID).Scan(&exists); err != nil {
			return mapStoreError(err)
		}
		if !exists {
			return apperrors.ErrLedgerNotFound
		}
		return apperrors.ErrStaleVersion
	}

	if _, err := tx.Exec(ctx, `DELETE FROM mark_rows WHERE ledger_id = $1`, ledgerID); err != nil {
		return mapStoreError(fmt.Errorf("error clearing mark rows: %w", err))
	}

	if err := insertMarkRows(ctx, tx, ledgerID, marks); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStoreError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// Delete removes the ledger and, via cascade, all its mark rows
func (r *GradeRepository) Delete(ctx context.Context, courseID int64) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM grade_ledgers WHERE course_id = $1`, courseID)
	if err != nil {
		return mapStoreError(fmt.Errorf("error deleting ledger: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrLedgerNotFound
	}

	return nil
}

// ListByStudent aggregates the student's mark rows across all ledgers,
// joined with the owning course name. An empty result is not an error.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentMark, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT c.id, c.name, m.id, m.ledger_id, m.student_id,
			m.test, m.seminar, m.assignment, m.attendance, m.total
		FROM mark_rows m
		JOIN grade_ledgers g ON g.id = m.ledger_id
		JOIN courses c ON c.id = g.course_id
		WHERE m.student_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var marks []*models.StudentMark
	for rows.Next() {
		var sm models.StudentMark
		if err := rows.Scan(
			&sm.CourseID, &sm.CourseName,
			&sm.Row.ID, &sm.Row.LedgerID, &sm.Row.StudentID,
			&sm.Row.Test, &sm.Row.Seminar, &sm.Row.Assignment, &sm.Row.Attendance, &sm.Row.Total,
		); err != nil {
			return nil, err
		}
		marks = append(marks, &sm)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return marks, nil
}

// insertMarkRows writes mark rows for a ledger within a transaction
func insertMarkRows(ctx context.Context, tx pgx.Tx, ledgerID int64, marks []*models.MarkRow) error {
	for _, m := range marks {
		err := tx.QueryRow(ctx, `
			INSERT INTO mark_rows (ledger_id, student_id, test, seminar, assignment, attendance, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			ledgerID, m.StudentID, m.Test, m.Seminar, m.Assignment, m.Attendance, m.Total,
		).Scan(&m.ID)
		if err != nil {
			if isUniqueViolation(err, "mark_rows_ledger_student_unique") {
				return apperrors.ErrDuplicateMarkRow
			}
			if isForeignKeyViolation(err) {
				return apperrors.ErrStudentNotFound
			}
			return mapStoreError(fmt.Errorf("error inserting mark row: %w", err))
		}
		m.LedgerID = ledgerID
	}
	return nil
}
