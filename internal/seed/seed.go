package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/repositories"
	"github.com/ykaya/deptportal/internal/config"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
	"github.com/ykaya/deptportal/internal/pkg/auth"
)

// CreateDefaultData seeds the super admin account on first boot. The
// super_admin role is never assignable through the API, so this is the only
// way one comes into existence.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	accountRepo := repositories.NewAccountRepository(dbPool)

	email := cfg.Seed.SuperAdminEmail
	password := cfg.Seed.SuperAdminPassword
	if email == "" || password == "" {
		lgr.Warn().Msg("Super admin seed credentials not configured, skipping seed")
		return nil
	}

	if _, err := accountRepo.FindByEmail(ctx, email); err == nil {
		lgr.Info().Str("email", email).Msg("Super admin already exists, skipping creation")
		return nil
	} else if !errors.Is(err, apperrors.ErrAccountNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing super admin password")
		return err
	}

	admin := &models.Account{
		Email:          email,
		Password:       hashed,
		FirstName:      "Portal",
		LastName:       "Administrator",
		Role:           models.RoleSuperAdmin,
		ApprovalStatus: models.ApprovalApproved,
		Level:          "Graduated/Alumni",
	}

	created, err := accountRepo.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			// Lost a race against a parallel boot, nothing to do
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating super admin account")
		return err
	}

	lgr.Info().Int64("accountId", created.ID).Str("email", email).Msg("Default super admin created")
	return nil
}
