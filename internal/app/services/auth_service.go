package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/ykaya/deptportal/internal/app/events"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
	"github.com/ykaya/deptportal/internal/pkg/auth"
)

// AuthAccountStore is the account persistence surface the auth service needs
type AuthAccountStore interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	accounts   AuthAccountStore
	jwtService *auth.JWTService
	bus        *events.Bus
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts AuthAccountStore, jwtService *auth.JWTService, bus *events.Bus, logger zerolog.Logger) AuthService {
	return &authService{
		accounts:   accounts,
		jwtService: jwtService,
		bus:        bus,
		logger:     logger,
	}
}

// Register creates a new account. Everyone registers as a pending student;
// role and approval are changed later through the admin surface.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.Account, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	account := &models.Account{
		Email:          req.Email,
		Password:       hashed,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           models.RoleStudent,
		ApprovalStatus: models.ApprovalPending,
		Level:          req.Level,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create account")
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindAccount, ID: created.ID, Op: events.OpCreated})
	s.logger.Info().Int64("accountId", created.ID).Msg("Account registered")
	return created, nil
}

// Login verifies credentials and issues a token pair. Approval status does
// not block login: pending and rejected accounts get a session, approval
// gates the privileged routes instead.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(account)
	if err != nil {
		s.logger.Error().Err(err).Int64("accountId", account.ID).Msg("Failed to generate tokens")
		return nil, err
	}

	return &dto.LoginResponse{
		Account: dto.NewAccountResponse(account),
		Tokens: dto.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			ExpiresIn:        expiresIn,
			RefreshExpiresIn: refreshExpiresIn,
		},
	}, nil
}
