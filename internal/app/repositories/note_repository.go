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

// NoteRepository handles database operations for course notes
type NoteRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db, timeout: defaultQueryTimeout}
}

// ListByCourse retrieves all notes for a course
func (r *NoteRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Note, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, course_id, title, body, created_at, updated_at
		FROM notes
		WHERE course_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.CourseID, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(err)
	}

	return notes, nil
}

// GetByID retrieves a note by ID
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var n models.Note
	err := r.db.QueryRow(ctx,
		`SELECT id, course_id, title, body, created_at, updated_at FROM notes WHERE id = $1`,
		id).Scan(&n.ID, &n.CourseID, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, mapStoreError(fmt.Errorf("error retrieving note: %w", err))
	}

	return &n, nil
}

// ExistsDuplicate checks for an identical note on the same course
func (r *NoteRepository) ExistsDuplicate(ctx context.Context, courseID int64, title, body string) (bool, error) {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM notes WHERE course_id = $1 AND title = $2 AND body = $3)`,
		courseID, title, body).Scan(&exists)
	if err != nil {
		return false, mapStoreError(fmt.Errorf("error checking note existence: %w", err))
	}

	return exists, nil
}

// Create inserts a new note
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO notes (course_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, note.CourseID, note.Title, note.Body).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return mapStoreError(fmt.Errorf("error creating note: %w", err))
	}

	return nil
}

// Update replaces the title and body of an existing note
func (r *NoteRepository) Update(ctx context.Context, id int64, title, body string) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx,
		`UPDATE notes SET title = $1, body = $2, updated_at = NOW() WHERE id = $3`,
		title, body, id)
	if err != nil {
		return mapStoreError(fmt.Errorf("error updating note: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := opContext(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return mapStoreError(fmt.Errorf("error deleting note: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}
