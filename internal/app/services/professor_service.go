package services

import (
	"context"
	"strings"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// ProfessorService handles professor approval and listing
type ProfessorService struct {
	professors ProfessorStore
}

// NewProfessorService creates a new professor service instance
func NewProfessorService(professors ProfessorStore) *ProfessorService {
	return &ProfessorService{professors: professors}
}

// GetProfessor retrieves a professor by ID
func (s *ProfessorService) GetProfessor(ctx context.Context, id int64) (*models.Professor, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid professor ID")
	}
	return s.professors.GetByID(ctx, id)
}

// ListPending retrieves a department's professors awaiting approval
func (s *ProfessorService) ListPending(ctx context.Context, department string) ([]*models.Professor, error) {
	if strings.TrimSpace(department) == "" {
		return nil, apperrors.NewValidationError("department is required")
	}
	return s.professors.ListPendingByDepartment(ctx, department)
}

// ListNames retrieves id and name of every professor in a department
func (s *ProfessorService) ListNames(ctx context.Context, department string) ([]*models.Professor, error) {
	if strings.TrimSpace(department) == "" {
		return nil, apperrors.NewValidationError("department is required")
	}
	return s.professors.ListNamesByDepartment(ctx, department)
}

// Approve assigns a role to a pending professor. Only approved
// professors may be assigned to courses or act as department head; the
// role string is the approval.
func (s *ProfessorService) Approve(ctx context.Context, id int64, role string) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid professor ID")
	}
	if role != models.RoleProfessor && role != models.RoleHOD {
		return apperrors.NewValidationError("role must be professor or HOD")
	}

	if _, err := s.professors.GetByID(ctx, id); err != nil {
		return err
	}

	return s.professors.UpdateRole(ctx, id, role)
}

// Delete removes a professor registration
func (s *ProfessorService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid professor ID")
	}
	return s.professors.Delete(ctx, id)
}
