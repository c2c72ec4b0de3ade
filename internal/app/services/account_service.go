package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/ykaya/deptportal/internal/app/auth"
	"github.com/ykaya/deptportal/internal/app/events"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
)

// AccountStore is the account persistence surface the account service needs
type AccountStore interface {
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	ListByApprovalStatus(ctx context.Context, status models.ApprovalStatus, page, pageSize int) ([]models.Account, int64, error)
	UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.Account, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (*models.Account, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, level *string, profileCompletion *int) (*models.Account, error)
}

// AccountService handles account administration and profile self-service
type AccountService interface {
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	SetApprovalStatus(ctx context.Context, actor models.Actor, targetID int64, status models.ApprovalStatus) (*models.Account, error)
	SetRole(ctx context.Context, actor models.Actor, targetID int64, role models.Role) (*models.Account, error)
	ListAccountsByStatus(ctx context.Context, actor models.Actor, status models.ApprovalStatus, page, pageSize int) ([]models.Account, int64, error)
	UpdateProfile(ctx context.Context, accountID int64, req dto.UpdateProfileRequest) (*models.Account, error)
}

type accountService struct {
	accounts AccountStore
	bus      *events.Bus
	logger   zerolog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(accounts AccountStore, bus *events.Bus, logger zerolog.Logger) AccountService {
	return &accountService{
		accounts: accounts,
		bus:      bus,
		logger:   logger,
	}
}

// GetAccount retrieves one account by id
func (s *accountService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// SetApprovalStatus resolves or re-classifies an account's admission state.
// Setting the status the account already holds is a no-op success.
func (s *accountService) SetApprovalStatus(ctx context.Context, actor models.Actor, targetID int64, status models.ApprovalStatus) (*models.Account, error) {
	if !auth.CanPerform(actor.Role, auth.ActionApproveAccount) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !status.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown approval status")
	}

	current, err := s.accounts.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if current.ApprovalStatus == status {
		return current, nil
	}
	if !current.ApprovalStatus.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidTransition
	}

	updated, err := s.accounts.UpdateApprovalStatus(ctx, targetID, status)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindAccount, ID: updated.ID, Op: events.OpUpdated})
	s.logger.Info().
		Int64("accountId", updated.ID).
		Int64("actorId", actor.AccountID).
		Str("status", string(status)).
		Msg("Account approval status changed")
	return updated, nil
}

// SetRole reassigns an account's authority tier. The super_admin tier is
// managed out of band: it can be neither granted nor revoked here.
func (s *accountService) SetRole(ctx context.Context, actor models.Actor, targetID int64, role models.Role) (*models.Account, error) {
	if !auth.CanPerform(actor.Role, auth.ActionSetRole) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !role.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown role")
	}
	if role == models.RoleSuperAdmin {
		return nil, apperrors.ErrInvalidTransition
	}

	updated, err := s.accounts.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindAccount, ID: updated.ID, Op: events.OpUpdated})
	s.logger.Info().
		Int64("accountId", updated.ID).
		Int64("actorId", actor.AccountID).
		Str("role", string(role)).
		Msg("Account role changed")
	return updated, nil
}

// ListAccountsByStatus pages through accounts in one admission state
func (s *accountService) ListAccountsByStatus(ctx context.Context, actor models.Actor, status models.ApprovalStatus, page, pageSize int) ([]models.Account, int64, error) {
	if !auth.CanPerform(actor.Role, auth.ActionListAccounts) {
		return nil, 0, apperrors.ErrPermissionDenied
	}
	if !status.IsValid() {
		return nil, 0, apperrors.NewInvalidInputError("unknown approval status")
	}
	return s.accounts.ListByApprovalStatus(ctx, status, page, pageSize)
}

// UpdateProfile applies owner-editable profile changes
func (s *accountService) UpdateProfile(ctx context.Context, accountID int64, req dto.UpdateProfileRequest) (*models.Account, error) {
	if req.FirstName == nil && req.LastName == nil && req.Level == nil && req.ProfileCompletion == nil {
		return nil, apperrors.NewInvalidInputError("no profile fields to update")
	}

	updated, err := s.accounts.UpdateProfile(ctx, accountID, req.FirstName, req.LastName, req.Level, req.ProfileCompletion)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindAccount, ID: updated.ID, Op: events.OpUpdated})
	return updated, nil
}
