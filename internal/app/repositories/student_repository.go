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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db, timeout: defaultQueryTimeout}
}

// Create registers a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO students (username, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		student.Username, student.Name, student.Email, student.Password,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrUsernameTaken
		}
		return mapStoreError(fmt.Errorf("error creating student: %w", err))
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var s models.Student
	err := r.db.QueryRow(ctx,
		`SELECT id, username, name, email, password, created_at FROM students WHERE id = $1`,
		id).Scan(&s.ID, &s.Username, &s.Name, &s.Email, &s.Password, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, mapStoreError(fmt.Errorf("error retrieving student: %w", err))
	}

	return &s, nil
}

// GetByUsername retrieves a student by username
func (r *StudentRepository) GetByUsername(ctx context.Context, username string) (*models.Student, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var s models.Student
	err := r.db.QueryRow(ctx,
		`SELECT id, username, name, email, password, created_at FROM students WHERE username = $1`,
		username).Scan(&s.ID, &s.Username, &s.Name, &s.Email, &s.Password, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, mapStoreError(fmt.Errorf("error retrieving student: %w", err))
	}

	return &s, nil
}

// MissingIDs returns the subset of ids with no matching student row.
// Used to reject rosters that would dangle.
func (r *StudentRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT x.id FROM unnest($1::bigint[]) AS x(id)
		 WHERE NOT EXISTS (SELECT 1 FROM students s WHERE s.id = x.id)`,
		ids)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("error checking student ids: %w", err))
	}
	defer rows.Close()

	var missing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		missing = append(missing, id)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return missing, nil
}
