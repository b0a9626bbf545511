package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// defaultQueryTimeout bounds every store operation so a hung request
// cannot tie up a worker indefinitely
const defaultQueryTimeout = 5 * time.Second

// Repositories is the container for all data access objects
type Repositories struct {
	Course     *CourseRepository
	Enrollment *EnrollmentRepository
	Grade      *GradeRepository
	Professor  *ProfessorRepository
	Student    *StudentRepository
	Note       *NoteRepository
}

// NewRepositories creates all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool, queryTimeout time.Duration) *Repositories {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &Repositories{
		Course:     &CourseRepository{db: db, timeout: queryTimeout},
		Enrollment: &EnrollmentRepository{db: db, timeout: queryTimeout},
		Grade:      &GradeRepository{db: db, timeout: queryTimeout},
		Professor:  &ProfessorRepository{db: db, timeout: queryTimeout},
		Student:    &StudentRepository{db: db, timeout: queryTimeout},
		Note:       &NoteRepository{db: db, timeout: queryTimeout},
	}
}

// opContext applies the bounded store deadline unless the caller
// already set a tighter one
func opContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// mapStoreError normalizes driver errors: deadline expiry becomes the
// caller-visible Timeout kind, everything else passes through
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrTimeout
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint
// violation, optionally on a specific constraint
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// isForeignKeyViolation reports whether err is a FK violation
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
