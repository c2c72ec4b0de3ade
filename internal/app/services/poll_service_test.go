package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykaya/deptportal/internal/app/events"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
)

func newPollServiceForTest(store *memPollStore) PollService {
	return NewPollService(store, events.NewBus(zerolog.Nop()), zerolog.Nop())
}

func createTestPoll(t *testing.T, svc PollService, options ...string) *models.Poll {
	t.Helper()
	if len(options) == 0 {
		options = []string{"Tuesday", "Thursday"}
	}
	poll, err := svc.CreatePoll(context.Background(), adminActor, dto.CreatePollRequest{
		Question: "Best day for the seminar?",
		Options:  options,
	})
	require.NoError(t, err)
	return poll
}

func TestCreatePoll(t *testing.T) {
	svc := newPollServiceForTest(newMemPollStore())

	poll := createTestPoll(t, svc, "Mon", "Tue", "Wed")

	assert.Equal(t, models.PollActive, poll.Status)
	require.Len(t, poll.Options, 3)
	for i, opt := range poll.Options {
		assert.Equal(t, i, opt.Position)
		assert.Zero(t, opt.VoteCount)
	}
}

func TestCreatePollValidation(t *testing.T) {
	svc := newPollServiceForTest(newMemPollStore())
	ctx := context.Background()

	tests := []struct {
		name     string
		actor    models.Actor
		question string
		options  []string
		wantErr  error
	}{
		{
			name:     "students cannot create polls",
			actor:    studentActor,
			question: "q",
			options:  []string{"a", "b"},
			wantErr:  apperrors.ErrPermissionDenied,
		},
		{
			name:     "question must not be blank",
			actor:    adminActor,
			question: "   ",
			options:  []string{"a", "b"},
			wantErr:  apperrors.ErrInvalidInput,
		},
		{
			name:     "a single option is not a poll",
			actor:    adminActor,
			question: "q",
			options:  []string{"a"},
			wantErr:  apperrors.ErrInvalidInput,
		},
		{
			name:     "more than ten options rejected",
			actor:    adminActor,
			question: "q",
			options:  []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			wantErr:  apperrors.ErrInvalidInput,
		},
		{
			name:     "blank options rejected rather than dropped",
			actor:    adminActor,
			question: "q",
			options:  []string{"a", "  "},
			wantErr:  apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePoll(ctx, tt.actor, dto.CreatePollRequest{Question: tt.question, Options: tt.options})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVote(t *testing.T) {
	store := newMemPollStore()
	svc := newPollServiceForTest(store)
	ctx := context.Background()
	poll := createTestPoll(t, svc)

	updated, err := svc.Vote(ctx, studentActor, poll.ID, poll.Options[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Options[0].VoteCount)
	assert.Equal(t, int64(1), updated.TotalVotes())
}

func TestVoteOnlyOncePerAccount(t *testing.T) {
	store := newMemPollStore()
	svc := newPollServiceForTest(store)
	ctx := context.Background()
	poll := createTestPoll(t, svc)

	_, err := svc.Vote(ctx, studentActor, poll.ID, poll.Options[0].ID)
	require.NoError(t, err)

	// Voting again, even for another option, is rejected: votes cannot change
	_, err = svc.Vote(ctx, studentActor, poll.ID, poll.Options[1].ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVoted)

	snapshot, err := svc.GetPoll(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot.TotalVotes(), "rejected ballot left no trace")
}

func TestVoteErrors(t *testing.T) {
	store := newMemPollStore()
	svc := newPollServiceForTest(store)
	ctx := context.Background()
	poll := createTestPoll(t, svc)
	other := createTestPoll(t, svc)

	t.Run("unknown poll", func(t *testing.T) {
		_, err := svc.Vote(ctx, studentActor, 999, poll.Options[0].ID)
		assert.ErrorIs(t, err, apperrors.ErrPollNotFound)
	})

	t.Run("option belonging to another poll", func(t *testing.T) {
		_, err := svc.Vote(ctx, studentActor, poll.ID, other.Options[0].ID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("closed poll", func(t *testing.T) {
		_, err := svc.ClosePoll(ctx, adminActor, poll.ID)
		require.NoError(t, err)

		_, err = svc.Vote(ctx, studentActor, poll.ID, poll.Options[0].ID)
		assert.ErrorIs(t, err, apperrors.ErrPollClosed)
	})
}

func TestClosePoll(t *testing.T) {
	store := newMemPollStore()
	svc := newPollServiceForTest(store)
	ctx := context.Background()
	poll := createTestPoll(t, svc)

	_, err := svc.Vote(ctx, studentActor, poll.ID, poll.Options[0].ID)
	require.NoError(t, err)

	closed, err := svc.ClosePoll(ctx, adminActor, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PollClosed, closed.Status)
	assert.NotNil(t, closed.ClosedAt)
	assert.Equal(t, int64(1), closed.TotalVotes(), "counts freeze at their closing values")

	// Closing again is an explicit invalid transition, not a no-op
	_, err = svc.ClosePoll(ctx, adminActor, poll.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestClosePollAuthorization(t *testing.T) {
	store := newMemPollStore()
	svc := newPollServiceForTest(store)
	ctx := context.Background()
	poll := createTestPoll(t, svc)

	_, err := svc.ClosePoll(ctx, studentActor, poll.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.ClosePoll(ctx, adminActor, 999)
	assert.ErrorIs(t, err, apperrors.ErrPollNotFound)
}
