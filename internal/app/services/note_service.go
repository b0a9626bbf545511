package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// NoteService handles shared course notes
type NoteService struct {
	notes   NoteStore
	courses CourseStore
}

// NewNoteService creates a new note service instance
func NewNoteService(notes NoteStore, courses CourseStore) *NoteService {
	return &NoteService{notes: notes, courses: courses}
}

// ListNotes retrieves all notes for a course
func (s *NoteService) ListNotes(ctx context.Context, courseID int64) ([]*models.Note, error) {
	if courseID <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}
	return s.notes.ListByCourse(ctx, courseID)
}

// GetNote retrieves a single note
func (s *NoteService) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid note ID")
	}
	return s.notes.GetByID(ctx, id)
}

// CreateNote adds a note to a course. An identical note on the same
// course is rejected.
func (s *NoteService) CreateNote(ctx context.Context, note *models.Note) error {
	if note == nil || note.CourseID <= 0 {
		return apperrors.NewValidationError("course is required")
	}
	if strings.TrimSpace(note.Title) == "" || strings.TrimSpace(note.Body) == "" {
		return apperrors.NewValidationError("title and body are required")
	}

	if _, err := s.courses.GetByID(ctx, note.CourseID); err != nil {
		return err
	}

	exists, err := s.notes.ExistsDuplicate(ctx, note.CourseID, note.Title, note.Body)
	if err != nil {
		return fmt.Errorf("error checking note duplicate: %w", err)
	}
	if exists {
		return apperrors.ErrNoteAlreadyExists
	}

	return s.notes.Create(ctx, note)
}

// UpdateNote replaces the title and body of an existing note
func (s *NoteService) UpdateNote(ctx context.Context, id int64, title, body string) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid note ID")
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return apperrors.NewValidationError("title and body are required")
	}
	return s.notes.Update(ctx, id, title, body)
}

// DeleteNote removes a note
func (s *NoteService) DeleteNote(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid note ID")
	}
	return s.notes.Delete(ctx, id)
}
