package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/app/repositories"
	"github.com/mdemir/coursedesk/internal/config"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
	"github.com/mdemir/coursedesk/internal/pkg/auth"
)

// CreateDefaultData ensures the department-head account exists so
// professor approval has an operator from the first boot.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.HOD.Username == "" || cfg.HOD.Password == "" {
		lgr.Warn().Msg("HOD account not configured, skipping seed")
		return nil
	}

	professorRepo := repositories.NewProfessorRepository(dbPool)

	existing, err := professorRepo.GetByUsername(ctx, cfg.HOD.Username)
	if err == nil {
		if existing.Role != models.RoleHOD {
			lgr.Info().Str("username", cfg.HOD.Username).Msg("Promoting seeded account to department head")
			return professorRepo.UpdateRole(ctx, existing.ID, models.RoleHOD)
		}
		return nil
	}
	if !errors.Is(err, apperrors.ErrProfessorNotFound) {
		return err
	}

	lgr.Info().Str("username", cfg.HOD.Username).Str("department", cfg.HOD.Department).
		Msg("Creating department head account")

	hashed, err := auth.HashPassword(cfg.HOD.Password)
	if err != nil {
		return err
	}

	hod := &models.Professor{
		Username:      cfg.HOD.Username,
		Name:          "Head of Department",
		Email:         cfg.HOD.Username + "@coursedesk.local",
		Qualification: "HOD",
		Department:    cfg.HOD.Department,
		Password:      hashed,
	}
	if err := professorRepo.Create(ctx, hod); err != nil {
		return err
	}

	return professorRepo.UpdateRole(ctx, hod.ID, models.RoleHOD)
}
