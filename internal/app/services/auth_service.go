package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
	"github.com/mdemir/coursedesk/internal/pkg/auth"
)

// AuthService handles registration and login for both account kinds.
// Authorization gating happens at the HTTP boundary; everything below
// receives the explicit identity, never ambient state.
type AuthService struct {
	professors ProfessorStore
	students   StudentStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(professors ProfessorStore, students StudentStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		professors: professors,
		students:   students,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterProfessor registers a professor. The account stays
// unapproved (empty role) until the department head assigns one.
func (s *AuthService) RegisterProfessor(ctx context.Context, req *dto.RegisterProfessorRequest) (*models.Professor, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	professor := &models.Professor{
		Username:      strings.TrimSpace(req.Username),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Qualification: req.Qualification,
		Department:    req.Department,
		Password:      hashed,
	}

	if err := s.professors.Create(ctx, professor); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", professor.Username).Str("department", professor.Department).
		Msg("Professor registered, pending approval")
	return professor, nil
}

// RegisterStudent registers a student account
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Username: strings.TrimSpace(req.Username),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: hashed,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", student.Username).Msg("Student registered")
	return student, nil
}

// LoginProfessor authenticates a professor. Unapproved registrations
// cannot log in.
func (s *AuthService) LoginProfessor(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	professor, err := s.professors.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !professor.Approved() {
		return nil, apperrors.ErrProfessorNotApproved
	}

	if !auth.CheckPassword(professor.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(professor.ID, professor.Username, string(models.KindProfessor), professor.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		ID:         professor.ID,
		Name:       professor.Name,
		Role:       professor.Role,
		Department: professor.Department,
		Token:      token,
		ExpiresIn:  expiresIn,
	}, nil
}

// LoginStudent authenticates a student
func (s *AuthService) LoginStudent(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	student, err := s.students.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(student.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(student.ID, student.Username, string(models.KindStudent), "student")
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		ID:        student.ID,
		Name:      student.Name,
		Role:      "student",
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}
