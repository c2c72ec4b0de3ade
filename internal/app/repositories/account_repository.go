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
	"github.com/ykaya/deptportal/internal/pkg/dberrors"
)

const accountColumns = "id, email, password, first_name, last_name, role, approval_status, level, profile_completion, created_at, updated_at"

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Password,
		&account.FirstName,
		&account.LastName,
		&account.Role,
		&account.ApprovalStatus,
		&account.Level,
		&account.ProfileCompletion,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error scanning account: %w", err)
	}
	return &account, nil
}

// Create inserts a new account. New accounts always start as pending
// students; the caller only controls identity and profile fields.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (email, password, first_name, last_name, role, approval_status, level, profile_completion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + accountColumns

	row := r.db.QueryRow(ctx, query,
		account.Email,
		account.Password,
		account.FirstName,
		account.LastName,
		account.Role,
		account.ApprovalStatus,
		account.Level,
		account.ProfileCompletion,
	)

	created, err := scanAccount(row)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// FindByID retrieves an account by id
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	query := squirrel.Select(accountColumns).
		From("accounts").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}

// FindByEmail retrieves an account by email
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := squirrel.Select(accountColumns).
		From("accounts").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}

// ListByApprovalStatus retrieves accounts in a given approval state, ordered
// by creation time ascending so pagination stays stable.
func (r *AccountRepository) ListByApprovalStatus(ctx context.Context, status models.ApprovalStatus, page, pageSize int) ([]models.Account, int64, error) {
	offset := (page - 1) * pageSize
	query := squirrel.Select(accountColumns).
		Column("COUNT(*) OVER() AS total_count").
		From("accounts").
		Where("approval_status = ?", status).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	var total int64
	for rows.Next() {
		var account models.Account
		err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.Password,
			&account.FirstName,
			&account.LastName,
			&account.Role,
			&account.ApprovalStatus,
			&account.Level,
			&account.ProfileCompletion,
			&account.CreatedAt,
			&account.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return accounts, total, nil
}

// ListApprovedStudents retrieves every approved student account ordered by
// creation time; input order feeds the leaderboard's stable sort.
func (r *AccountRepository) ListApprovedStudents(ctx context.Context) ([]models.Account, error) {
	query := squirrel.Select(accountColumns).
		From("accounts").
		Where("approval_status = ?", models.ApprovalApproved).
		Where("role = ?", models.RoleStudent).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.Password,
			&account.FirstName,
			&account.LastName,
			&account.Role,
			&account.ApprovalStatus,
			&account.Level,
			&account.ProfileCompletion,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return accounts, nil
}

// UpdateApprovalStatus applies the approval transition as a single atomic
// update and returns the updated account.
func (r *AccountRepository) UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET approval_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns

	return scanAccount(r.db.QueryRow(ctx, query, id, status))
}

// UpdateRole changes the role as a single atomic update. The WHERE guard
// keeps a super_admin row untouched even under concurrent attempts; zero
// rows with an existing target means the guard fired.
func (r *AccountRepository) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET role = $2, updated_at = NOW()
		WHERE id = $1 AND role <> $3
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, id, role, models.RoleSuperAdmin))
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			// Distinguish a missing account from a protected super_admin target
			if _, findErr := r.FindByID(ctx, id); findErr == nil {
				return nil, apperrors.ErrInvalidTransition
			}
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// UpdateProfile updates owner-editable profile fields; nil fields are left
// unchanged.
func (r *AccountRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, level *string, profileCompletion *int) (*models.Account, error) {
	update := squirrel.Update("accounts").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Suffix("RETURNING " + accountColumns).
		PlaceholderFormat(squirrel.Dollar)

	if firstName != nil {
		update = update.Set("first_name", *firstName)
	}
	if lastName != nil {
		update = update.Set("last_name", *lastName)
	}
	if level != nil {
		update = update.Set("level", *level)
	}
	if profileCompletion != nil {
		update = update.Set("profile_completion", *profileCompletion)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}
