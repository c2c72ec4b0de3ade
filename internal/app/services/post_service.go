package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ykaya/deptportal/internal/app/auth"
	"github.com/ykaya/deptportal/internal/app/events"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/app/repositories"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
)

// PostStore is the post persistence surface the post service needs
type PostStore interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter repositories.PostFilter) ([]models.Post, int64, error)
	UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.Post, error)
	SetFeatured(ctx context.Context, id int64, featured bool) (*models.Post, error)
	Like(ctx context.Context, postID, accountID int64) (int64, error)
	Unlike(ctx context.Context, postID, accountID int64) (int64, error)
	IncrementViews(ctx context.Context, id int64) (int64, error)
}

// PostService handles blog posts and their moderation
type PostService interface {
	CreatePost(ctx context.Context, actor models.Actor, req dto.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, actor *models.Actor, id int64) (*models.Post, error)
	ListPublicPosts(ctx context.Context, page, pageSize int) ([]models.Post, int64, error)
	ListModerationQueue(ctx context.Context, actor models.Actor, status models.ApprovalStatus, page, pageSize int) ([]models.Post, int64, error)
	SetApproval(ctx context.Context, actor models.Actor, postID int64, status models.ApprovalStatus) (*models.Post, error)
	SetFeatured(ctx context.Context, actor models.Actor, postID int64, featured bool) (*models.Post, error)
	Like(ctx context.Context, actor models.Actor, postID int64) (int64, error)
	Unlike(ctx context.Context, actor models.Actor, postID int64) (int64, error)
	RegisterView(ctx context.Context, postID int64) (int64, error)
}

type postService struct {
	posts  PostStore
	bus    *events.Bus
	logger zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(posts PostStore, bus *events.Bus, logger zerolog.Logger) PostService {
	return &postService{
		posts:  posts,
		bus:    bus,
		logger: logger,
	}
}

// CreatePost submits a new post into the moderation queue. Every post starts
// pending regardless of the requested publish flag; publish alone never makes
// it publicly visible.
func (s *postService) CreatePost(ctx context.Context, actor models.Actor, req dto.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Body) == "" {
		return nil, apperrors.NewInvalidInputError("title and body must not be empty")
	}

	post := &models.Post{
		AuthorID:       actor.AccountID,
		Title:          title,
		Body:           req.Body,
		ApprovalStatus: models.ApprovalPending,
		Published:      req.Published,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Int64("authorId", actor.AccountID).Msg("Failed to create post")
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindPost, ID: created.ID, Op: events.OpCreated})
	return created, nil
}

// GetPost retrieves a post. Posts that are not publicly visible exist only
// for their author and for moderators; everyone else gets not-found rather
// than a hint that a hidden post exists.
func (s *postService) GetPost(ctx context.Context, actor *models.Actor, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.PubliclyVisible() {
		return post, nil
	}
	if actor != nil && (actor.AccountID == post.AuthorID || auth.CanPerform(actor.Role, auth.ActionViewModeration)) {
		return post, nil
	}
	return nil, apperrors.ErrPostNotFound
}

// ListPublicPosts pages through published, approved posts
func (s *postService) ListPublicPosts(ctx context.Context, page, pageSize int) ([]models.Post, int64, error) {
	return s.posts.List(ctx, repositories.PostFilter{
		PublicOnly: true,
		Page:       page,
		PageSize:   pageSize,
	})
}

// ListModerationQueue pages through posts in one moderation state
func (s *postService) ListModerationQueue(ctx context.Context, actor models.Actor, status models.ApprovalStatus, page, pageSize int) ([]models.Post, int64, error) {
	if !auth.CanPerform(actor.Role, auth.ActionViewModeration) {
		return nil, 0, apperrors.ErrPermissionDenied
	}
	if !status.IsValid() {
		return nil, 0, apperrors.NewInvalidInputError("unknown approval status")
	}
	return s.posts.List(ctx, repositories.PostFilter{
		Status:   &status,
		Page:     page,
		PageSize: pageSize,
	})
}

// SetApproval moves a post through the moderation state machine. Same
// transition table as account admission: re-setting the current state is a
// no-op, nothing moves back to pending.
func (s *postService) SetApproval(ctx context.Context, actor models.Actor, postID int64, status models.ApprovalStatus) (*models.Post, error) {
	if !auth.CanPerform(actor.Role, auth.ActionModeratePost) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !status.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown approval status")
	}

	current, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if current.ApprovalStatus == status {
		return current, nil
	}
	if !current.ApprovalStatus.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidTransition
	}

	updated, err := s.posts.UpdateApprovalStatus(ctx, postID, status)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindPost, ID: updated.ID, Op: events.OpUpdated})
	s.logger.Info().
		Int64("postId", updated.ID).
		Int64("actorId", actor.AccountID).
		Str("status", string(status)).
		Msg("Post moderation status changed")
	return updated, nil
}

// SetFeatured flips the curation flag on a post
func (s *postService) SetFeatured(ctx context.Context, actor models.Actor, postID int64, featured bool) (*models.Post, error) {
	if !auth.CanPerform(actor.Role, auth.ActionFeaturePost) {
		return nil, apperrors.ErrPermissionDenied
	}

	updated, err := s.posts.SetFeatured(ctx, postID, featured)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindPost, ID: updated.ID, Op: events.OpUpdated})
	return updated, nil
}

// Like records the actor's like. Liking twice is a no-op: the count comes
// back unchanged and no error is surfaced.
func (s *postService) Like(ctx context.Context, actor models.Actor, postID int64) (int64, error) {
	if err := s.requireVisible(ctx, postID); err != nil {
		return 0, err
	}

	likes, err := s.posts.Like(ctx, postID, actor.AccountID)
	if err != nil {
		return 0, err
	}

	s.bus.Publish(events.Change{Kind: events.KindPost, ID: postID, Op: events.OpUpdated})
	return likes, nil
}

// Unlike removes the actor's like; removing a like that was never recorded
// leaves the count untouched.
func (s *postService) Unlike(ctx context.Context, actor models.Actor, postID int64) (int64, error) {
	if err := s.requireVisible(ctx, postID); err != nil {
		return 0, err
	}

	likes, err := s.posts.Unlike(ctx, postID, actor.AccountID)
	if err != nil {
		return 0, err
	}

	s.bus.Publish(events.Change{Kind: events.KindPost, ID: postID, Op: events.OpUpdated})
	return likes, nil
}

// RegisterView bumps the monotonic view counter of a public post
func (s *postService) RegisterView(ctx context.Context, postID int64) (int64, error) {
	if err := s.requireVisible(ctx, postID); err != nil {
		return 0, err
	}
	return s.posts.IncrementViews(ctx, postID)
}

func (s *postService) requireVisible(ctx context.Context, postID int64) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !post.PubliclyVisible() {
		return apperrors.ErrPostNotFound
	}
	return nil
}
