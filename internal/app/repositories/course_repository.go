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

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db, timeout: defaultQueryTimeout}
}

// Create inserts a new course. The offering tuple (department, name,
// semester, year, professor) must be unique.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO courses (department, semester, year, name, professor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version, created_at
	`

	err := r.db.QueryRow(ctx, query,
		course.Department, course.Semester, course.Year, course.Name, course.ProfessorID,
	).Scan(&course.ID, &course.Version, &course.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "courses_offering_unique") {
			return apperrors.ErrCourseAlreadyExists
		}
		return mapStoreError(fmt.Errorf("error creating course: %w", err))
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, department, semester, year, name, professor_id, version, created_at
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Department,
		&course.Semester,
		&course.Year,
		&course.Name,
		&course.ProfessorID,
		&course.Version,
		&course.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, mapStoreError(fmt.Errorf("error retrieving course: %w", err))
	}

	return &course, nil
}

// ExistsDuplicate checks whether an identical offering tuple already exists
func (r *CourseRepository) ExistsDuplicate(ctx context.Context, department, name, semester string, year int, professorID int64) (bool, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM courses
			WHERE department = $1 AND name = $2 AND semester = $3 AND year = $4 AND professor_id = $5
		)`,
		department, name, semester, year, professorID).Scan(&exists)
	if err != nil {
		return false, mapStoreError(fmt.Errorf("error checking course existence: %w", err))
	}

	return exists, nil
}

// ListByProfessor retrieves all courses assigned to a professor,
// ordered by creation. Rosters are omitted.
func (r *CourseRepository) ListByProfessor(ctx context.Context, professorID int64) ([]*models.Course, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, department, semester, year, name, professor_id, version, created_at
		FROM courses
		WHERE professor_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, professorID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Department,
			&course.Semester,
			&course.Year,
			&course.Name,
			&course.ProfessorID,
			&course.Version,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return courses, nil
}

// ListWithJoined retrieves every course with the professor name and a
// joined flag for the given student, computed from current active
// enrollments
func (r *CourseRepository) ListWithJoined(ctx context.Context, studentID int64) ([]*models.CourseListing, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT c.id, c.department, c.semester, c.year, c.name, p.name,
			EXISTS(
				SELECT 1 FROM enrollments e
				WHERE e.course_id = c.id AND e.student_id = $1 AND e.active
			) AS joined
		FROM courses c
		JOIN professors p ON p.id = c.professor_id
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var listings []*models.CourseListing
	for rows.Next() {
		var l models.CourseListing
		if err := rows.Scan(&l.ID, &l.Department, &l.Semester, &l.Year, &l.Name, &l.ProfessorName, &l.Joined); err != nil {
			return nil, err
		}
		listings = append(listings, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return listings, nil
}

// ListJoined retrieves only the courses the student is actively
// enrolled in. Pure read, no side effects.
func (r *CourseRepository) ListJoined(ctx context.Context, studentID int64) ([]*models.CourseListing, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT c.id, c.department, c.semester, c.year, c.name, p.name
		FROM courses c
		JOIN professors p ON p.id = c.professor_id
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.student_id = $1 AND e.active
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var listings []*models.CourseListing
	for rows.Next() {
		var l models.CourseListing
		if err := rows.Scan(&l.ID, &l.Department, &l.Semester, &l.Year, &l.Name, &l.ProfessorName); err != nil {
			return nil, err
		}
		l.Joined = true
		listings = append(listings, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return listings, nil
}

// RosterStudents retrieves the actively enrolled students of a course
func (r *CourseRepository) RosterStudents(ctx context.Context, courseID int64) ([]*models.Student, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT s.id, s.username, s.name, s.email, s.created_at
		FROM students s
		JOIN enrollments e ON e.student_id = s.id
		WHERE e.course_id = $1 AND e.active
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Username, &s.Name, &s.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return students, nil
}

// SetRoster replaces the active roster wholesale, guarded by the
// course version. The caller supplies the version it read; a mismatch
// means another writer got there first.
func (r *CourseRepository) SetRoster(ctx context.Context, courseID int64, studentIDs []int64, version int64) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	// Version bump doubles as the compare-and-swap
	tag, err := tx.Exec(ctx,
		`UPDATE courses SET version = version + 1 WHERE id = $1 AND version = $2`,
		courseID, version)
	if err != nil {
		return mapStoreError(fmt.Errorf("error updating course version: %w", err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists); err != nil {
			return mapStoreError(err)
		}
		if !exists {
			return apperrors.ErrCourseNotFound
		}
		return apperrors.ErrStaleVersion
	}

	if _, err := tx.Exec(ctx,
		`UPDATE enrollments SET active = FALSE WHERE course_id = $1`, courseID); err != nil {
		return mapStoreError(fmt.Errorf("error clearing roster: %w", err))
	}

	for _, studentID := range studentIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO enrollments (course_id, student_id, active)
			VALUES ($1, $2, TRUE)
			ON CONFLICT (course_id, student_id) DO UPDATE SET active = TRUE`,
			courseID, studentID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.ErrStudentNotFound
			}
			return mapStoreError(fmt.Errorf("error enrolling student %d: %w", studentID, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStoreError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// Delete removes a course. The grade-ledger FK restricts deletion
// while a ledger exists; the service checks first for a clean error,
// this is the backstop.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrCourseHasGrades
		}
		return mapStoreError(fmt.Errorf("error deleting course: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
