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

// ProfessorRepository handles database operations for professors
type ProfessorRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewProfessorRepository creates a new professor repository
func NewProfessorRepository(db *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{db: db, timeout: defaultQueryTimeout}
}

const professorColumns = `id, username, name, email, qualification, department, password, role, created_at`

func scanProfessor(row pgx.Row) (*models.Professor, error) {
	var p models.Professor
	err := row.Scan(
		&p.ID, &p.Username, &p.Name, &p.Email, &p.Qualification,
		&p.Department, &p.Password, &p.Role, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create registers a new professor with an empty role (pending
// approval)
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO professors (username, name, email, qualification, department, password, role)
		VALUES ($1, $2, $3, $4, $5, $6, '')
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		professor.Username, professor.Name, professor.Email,
		professor.Qualification, professor.Department, professor.Password,
	).Scan(&professor.ID, &professor.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrUsernameTaken
		}
		return mapStoreError(fmt.Errorf("error creating professor: %w", err))
	}

	return nil
}

// GetByID retrieves a professor by ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	professor, err := scanProfessor(r.db.QueryRow(ctx,
		`SELECT `+professorColumns+` FROM professors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, mapStoreError(fmt.Errorf("error retrieving professor: %w", err))
	}

	return professor, nil
}

// GetByUsername retrieves a professor by username
func (r *ProfessorRepository) GetByUsername(ctx context.Context, username string) (*models.Professor, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	professor, err := scanProfessor(r.db.QueryRow(ctx,
		`SELECT `+professorColumns+` FROM professors WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, mapStoreError(fmt.Errorf("error retrieving professor: %w", err))
	}

	return professor, nil
}

// ListPendingByDepartment retrieves professors of a department still
// awaiting approval (empty role)
func (r *ProfessorRepository) ListPendingByDepartment(ctx context.Context, department string) ([]*models.Professor, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+professorColumns+` FROM professors WHERE department = $1 AND role = '' ORDER BY created_at`,
		department)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		professor, err := scanProfessor(rows)
		if err != nil {
			return nil, err
		}
		professors = append(professors, professor)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return professors, nil
}

// ListNamesByDepartment retrieves id and name of every professor in a
// department
func (r *ProfessorRepository) ListNamesByDepartment(ctx context.Context, department string) ([]*models.Professor, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM professors WHERE department = $1 ORDER BY name`, department)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		var p models.Professor
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		professors = append(professors, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return professors, nil
}

// UpdateRole sets the professor's approval role
func (r *ProfessorRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE professors SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return mapStoreError(fmt.Errorf("error updating professor role: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfessorNotFound
	}

	return nil
}

// Delete removes a professor. Courses still assigned to the professor
// block deletion through the FK.
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM professors WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewConflictError("professor is still assigned to courses")
		}
		return mapStoreError(fmt.Errorf("error deleting professor: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfessorNotFound
	}

	return nil
}
