package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
)

const pollColumns = "id, question, status, created_by, created_at, closed_at"

// PollRepository handles database operations for polls
type PollRepository struct {
	db *pgxpool.Pool
}

// NewPollRepository creates a new PollRepository
func NewPollRepository(db *pgxpool.Pool) *PollRepository {
	return &PollRepository{db: db}
}

func scanPoll(row pgx.Row) (*models.Poll, error) {
	var poll models.Poll
	err := row.Scan(
		&poll.ID,
		&poll.Question,
		&poll.Status,
		&poll.CreatedBy,
		&poll.CreatedAt,
		&poll.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPollNotFound
		}
		return nil, fmt.Errorf("error scanning poll: %w", err)
	}
	return &poll, nil
}

// Create inserts a poll together with its options in one transaction so a
// poll can never be observed without its full option set.
func (r *PollRepository) Create(ctx context.Context, poll *models.Poll, options []string) (*models.Poll, error) {
	var created *models.Poll

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO polls (question, status, created_by)
			VALUES ($1, $2, $3)
			RETURNING `+pollColumns,
			poll.Question, models.PollActive, poll.CreatedBy)

		var err error
		created, err = scanPoll(row)
		if err != nil {
			return err
		}

		for position, text := range options {
			var opt models.PollOption
			err := tx.QueryRow(ctx, `
				INSERT INTO poll_options (poll_id, text, position)
				VALUES ($1, $2, $3)
				RETURNING id, poll_id, text, position, vote_count`,
				created.ID, text, position).Scan(
				&opt.ID, &opt.PollID, &opt.Text, &opt.Position, &opt.VoteCount)
			if err != nil {
				return fmt.Errorf("error inserting poll option: %w", err)
			}
			created.Options = append(created.Options, opt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a poll with its options in stable position order
func (r *PollRepository) GetByID(ctx context.Context, id int64) (*models.Poll, error) {
	query := squirrel.Select(pollColumns).
		From("polls").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	poll, err := scanPoll(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, err
	}

	options, err := r.optionsForPoll(ctx, id)
	if err != nil {
		return nil, err
	}
	poll.Options = options
	return poll, nil
}

func (r *PollRepository) optionsForPoll(ctx context.Context, pollID int64) ([]models.PollOption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, poll_id, text, position, vote_count
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY position ASC`, pollID)
	if err != nil {
		return nil, fmt.Errorf("error loading poll options: %w", err)
	}
	defer rows.Close()

	var options []models.PollOption
	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Position, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("error scanning poll option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return options, nil
}

// List retrieves polls newest first with pagination; options are loaded per
// poll so every snapshot carries its counts.
func (r *PollRepository) List(ctx context.Context, status *models.PollStatus, page, pageSize int) ([]models.Poll, int64, error) {
	query := squirrel.Select(pollColumns).
		Column("COUNT(*) OVER() AS total_count").
		From("polls").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var polls []models.Poll
	var total int64
	for rows.Next() {
		var poll models.Poll
		err := rows.Scan(
			&poll.ID,
			&poll.Question,
			&poll.Status,
			&poll.CreatedBy,
			&poll.CreatedAt,
			&poll.ClosedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	for i := range polls {
		options, err := r.optionsForPoll(ctx, polls[i].ID)
		if err != nil {
			return nil, 0, err
		}
		polls[i].Options = options
	}

	return polls, total, nil
}

// Close moves an ACTIVE poll to CLOSED. The status guard in the WHERE clause
// makes concurrent closes race-safe: exactly one wins, the rest see zero rows
// and report an invalid transition.
func (r *PollRepository) Close(ctx context.Context, id int64) (*models.Poll, error) {
	query := `
		UPDATE polls
		SET status = $2, closed_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING ` + pollColumns

	poll, err := scanPoll(r.db.QueryRow(ctx, query, id, models.PollClosed, models.PollActive))
	if err != nil {
		if errors.Is(err, apperrors.ErrPollNotFound) {
			// Zero rows: either the poll is already closed or it never existed
			if _, findErr := r.GetByID(ctx, id); findErr == nil {
				return nil, apperrors.ErrInvalidTransition
			}
			return nil, apperrors.ErrPollNotFound
		}
		return nil, err
	}

	options, err := r.optionsForPoll(ctx, id)
	if err != nil {
		return nil, err
	}
	poll.Options = options
	return poll, nil
}

// Vote records one ballot and bumps the option counter in a single statement.
// The target CTE pins the option to the poll and requires the poll to still
// be ACTIVE; the unique (poll_id, account_id) constraint absorbs a second
// ballot from the same account. The returned flag reports whether this call
// actually inserted the ballot.
func (r *PollRepository) Vote(ctx context.Context, pollID, optionID, accountID int64) (int64, bool, error) {
	query := `
		WITH target AS (
			SELECT o.id
			FROM poll_options o
			JOIN polls p ON p.id = o.poll_id
			WHERE o.id = $2 AND o.poll_id = $1 AND p.status = $4
		), ballot AS (
			INSERT INTO poll_votes (poll_id, option_id, account_id)
			SELECT $1, id, $3 FROM target
			ON CONFLICT (poll_id, account_id) DO NOTHING
			RETURNING option_id
		)
		UPDATE poll_options
		SET vote_count = vote_count + 1
		WHERE id IN (SELECT option_id FROM ballot)
		RETURNING vote_count`

	var votes int64
	err := r.db.QueryRow(ctx, query, pollID, optionID, accountID, models.PollActive).Scan(&votes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Nothing inserted: closed poll, wrong option, or repeat ballot.
			// The caller disambiguates against a fresh snapshot.
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error recording vote: %w", err)
	}
	return votes, true, nil
}

// HasVoted reports whether the account has already voted in the poll
func (r *PollRepository) HasVoted(ctx context.Context, pollID, accountID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM poll_votes WHERE poll_id = $1 AND account_id = $2)`
	if err := r.db.QueryRow(ctx, query, pollID, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking vote: %w", err)
	}
	return exists, nil
}
