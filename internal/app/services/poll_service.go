package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ykaya/deptportal/internal/app/auth"
	"github.com/ykaya/deptportal/internal/app/events"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
)

// PollStore is the poll persistence surface the poll service needs
type PollStore interface {
	Create(ctx context.Context, poll *models.Poll, options []string) (*models.Poll, error)
	GetByID(ctx context.Context, id int64) (*models.Poll, error)
	List(ctx context.Context, status *models.PollStatus, page, pageSize int) ([]models.Poll, int64, error)
	Close(ctx context.Context, id int64) (*models.Poll, error)
	Vote(ctx context.Context, pollID, optionID, accountID int64) (int64, bool, error)
	HasVoted(ctx context.Context, pollID, accountID int64) (bool, error)
}

// PollService handles the poll lifecycle and voting
type PollService interface {
	CreatePoll(ctx context.Context, actor models.Actor, req dto.CreatePollRequest) (*models.Poll, error)
	GetPoll(ctx context.Context, id int64) (*models.Poll, error)
	ListPolls(ctx context.Context, status *models.PollStatus, page, pageSize int) ([]models.Poll, int64, error)
	Vote(ctx context.Context, actor models.Actor, pollID, optionID int64) (*models.Poll, error)
	ClosePoll(ctx context.Context, actor models.Actor, pollID int64) (*models.Poll, error)
}

type pollService struct {
	polls  PollStore
	bus    *events.Bus
	logger zerolog.Logger
}

// NewPollService creates a new PollService
func NewPollService(polls PollStore, bus *events.Bus, logger zerolog.Logger) PollService {
	return &pollService{
		polls:  polls,
		bus:    bus,
		logger: logger,
	}
}

// CreatePoll opens a new active poll. Options are trimmed; blank options are
// rejected rather than silently dropped so the client sees exactly the
// ballot it asked for.
func (s *pollService) CreatePoll(ctx context.Context, actor models.Actor, req dto.CreatePollRequest) (*models.Poll, error) {
	if !auth.CanPerform(actor.Role, auth.ActionCreatePoll) {
		return nil, apperrors.ErrPermissionDenied
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperrors.NewInvalidInputError("question must not be empty")
	}

	options := make([]string, 0, len(req.Options))
	for _, opt := range req.Options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			return nil, apperrors.NewInvalidInputError("options must not be empty")
		}
		options = append(options, trimmed)
	}
	if len(options) < models.MinPollOptions || len(options) > models.MaxPollOptions {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("a poll needs between %d and %d options", models.MinPollOptions, models.MaxPollOptions))
	}

	created, err := s.polls.Create(ctx, &models.Poll{
		Question:  question,
		CreatedBy: actor.AccountID,
	}, options)
	if err != nil {
		s.logger.Error().Err(err).Int64("actorId", actor.AccountID).Msg("Failed to create poll")
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindPoll, ID: created.ID, Op: events.OpCreated})
	s.logger.Info().Int64("pollId", created.ID).Int64("actorId", actor.AccountID).Msg("Poll created")
	return created, nil
}

// GetPoll retrieves a poll snapshot with its current counts
func (s *pollService) GetPoll(ctx context.Context, id int64) (*models.Poll, error) {
	return s.polls.GetByID(ctx, id)
}

// ListPolls pages through polls, optionally filtered by lifecycle state
func (s *pollService) ListPolls(ctx context.Context, status *models.PollStatus, page, pageSize int) ([]models.Poll, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return s.polls.List(ctx, status, page, pageSize)
}

// Vote records the actor's ballot. One ballot per account per poll; changing
// a vote is not supported. The store's insert is atomic, so the checks here
// only pick the right error for the client — a racing duplicate still loses
// on the unique ballot constraint.
func (s *pollService) Vote(ctx context.Context, actor models.Actor, pollID, optionID int64) (*models.Poll, error) {
	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.Status == models.PollClosed {
		return nil, apperrors.ErrPollClosed
	}
	if !poll.HasOption(optionID) {
		return nil, apperrors.NewInvalidInputError("option does not belong to this poll")
	}

	_, inserted, err := s.polls.Vote(ctx, pollID, optionID, actor.AccountID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Nothing changed: either a repeat ballot or the poll closed between
		// the snapshot and the insert.
		voted, checkErr := s.polls.HasVoted(ctx, pollID, actor.AccountID)
		if checkErr != nil {
			return nil, checkErr
		}
		if voted {
			return nil, apperrors.ErrAlreadyVoted
		}
		return nil, apperrors.ErrPollClosed
	}

	s.bus.Publish(events.Change{Kind: events.KindPoll, ID: pollID, Op: events.OpUpdated})

	return s.polls.GetByID(ctx, pollID)
}

// ClosePoll ends an active poll; the counts freeze at their current values.
// Closing a poll that is already closed is an invalid transition, and a
// closed poll is never reopened.
func (s *pollService) ClosePoll(ctx context.Context, actor models.Actor, pollID int64) (*models.Poll, error) {
	if !auth.CanPerform(actor.Role, auth.ActionClosePoll) {
		return nil, apperrors.ErrPermissionDenied
	}

	closed, err := s.polls.Close(ctx, pollID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindPoll, ID: closed.ID, Op: events.OpUpdated})
	s.logger.Info().Int64("pollId", closed.ID).Int64("actorId", actor.AccountID).Msg("Poll closed")
	return closed, nil
}
