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

const postColumns = "id, author_id, title, body, approval_status, published, featured, views_count, likes_count, created_at, updated_at"

// PostFilter narrows post listings
type PostFilter struct {
	// PublicOnly restricts to published AND approved posts
	PublicOnly bool
	// Status filters by moderation state (moderation views)
	Status *models.ApprovalStatus
	// AuthorID filters to one author's posts
	AuthorID *int64
	Page     int
	PageSize int
}

// PostRepository handles database operations for blog posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Body,
		&post.ApprovalStatus,
		&post.Published,
		&post.Featured,
		&post.ViewsCount,
		&post.LikesCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error scanning post: %w", err)
	}
	return &post, nil
}

// Create inserts a new post; moderation starts at pending
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (author_id, title, body, approval_status, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + postColumns

	return scanPost(r.db.QueryRow(ctx, query,
		post.AuthorID,
		post.Title,
		post.Body,
		post.ApprovalStatus,
		post.Published,
	))
}

// GetByID retrieves a post by id
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := squirrel.Select(postColumns).
		From("posts").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanPost(r.db.QueryRow(ctx, sql, args...))
}

// List retrieves posts matching the filter with pagination
func (r *PostRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	query := squirrel.Select(postColumns).
		Column("COUNT(*) OVER() AS total_count").
		From("posts").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		PlaceholderFormat(squirrel.Dollar)

	if filter.PublicOnly {
		query = query.Where("published = TRUE").Where("approval_status = ?", models.ApprovalApproved)
	}
	if filter.Status != nil {
		query = query.Where("approval_status = ?", *filter.Status)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
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

	var posts []models.Post
	var total int64
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Body,
			&post.ApprovalStatus,
			&post.Published,
			&post.Featured,
			&post.ViewsCount,
			&post.LikesCount,
			&post.CreatedAt,
			&post.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, total, nil
}

// UpdateApprovalStatus applies the moderation transition as a single atomic
// update and returns the updated post.
func (r *PostRepository) UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.Post, error) {
	query := `
		UPDATE posts
		SET approval_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns

	return scanPost(r.db.QueryRow(ctx, query, id, status))
}

// SetFeatured flips the curation flag
func (r *PostRepository) SetFeatured(ctx context.Context, id int64, featured bool) (*models.Post, error) {
	query := `
		UPDATE posts
		SET featured = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns

	return scanPost(r.db.QueryRow(ctx, query, id, featured))
}

// Like records the actor in the liked-by set and bumps the counter in one
// statement. Re-liking is absorbed by ON CONFLICT, so the counter only moves
// when a row was actually inserted; concurrent likes from different accounts
// are both reflected.
func (r *PostRepository) Like(ctx context.Context, postID, accountID int64) (int64, error) {
	query := `
		WITH ins AS (
			INSERT INTO post_likes (post_id, account_id)
			VALUES ($1, $2)
			ON CONFLICT (post_id, account_id) DO NOTHING
			RETURNING 1
		)
		UPDATE posts
		SET likes_count = likes_count + (SELECT COUNT(*) FROM ins)
		WHERE id = $1
		RETURNING likes_count`

	var likes int64
	err := r.db.QueryRow(ctx, query, postID, accountID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error recording like: %w", err)
	}
	return likes, nil
}

// Unlike is the exact inverse of Like; removing a like that was never
// recorded leaves the counter untouched.
func (r *PostRepository) Unlike(ctx context.Context, postID, accountID int64) (int64, error) {
	query := `
		WITH del AS (
			DELETE FROM post_likes
			WHERE post_id = $1 AND account_id = $2
			RETURNING 1
		)
		UPDATE posts
		SET likes_count = GREATEST(likes_count - (SELECT COUNT(*) FROM del), 0)
		WHERE id = $1
		RETURNING likes_count`

	var likes int64
	err := r.db.QueryRow(ctx, query, postID, accountID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error removing like: %w", err)
	}
	return likes, nil
}

// HasLiked reports whether the account currently likes the post
func (r *PostRepository) HasLiked(ctx context.Context, postID, accountID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND account_id = $2)`
	if err := r.db.QueryRow(ctx, query, postID, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking like: %w", err)
	}
	return exists, nil
}

// IncrementViews bumps the monotonic view counter
func (r *PostRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	query := `
		UPDATE posts
		SET views_count = views_count + 1
		WHERE id = $1
		RETURNING views_count`

	var views int64
	err := r.db.QueryRow(ctx, query, id).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error incrementing views: %w", err)
	}
	return views, nil
}
