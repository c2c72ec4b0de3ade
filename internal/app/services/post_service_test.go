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

func newPostServiceForTest(store *memPostStore) PostService {
	return NewPostService(store, events.NewBus(zerolog.Nop()), zerolog.Nop())
}

func publicPost(store *memPostStore, authorID int64) models.Post {
	return store.add(models.Post{
		AuthorID:       authorID,
		Title:          "Robotics day",
		Body:           "Details inside",
		ApprovalStatus: models.ApprovalApproved,
		Published:      true,
	})
}

func TestCreatePostStartsPending(t *testing.T) {
	store := newMemPostStore()
	svc := newPostServiceForTest(store)

	post, err := svc.CreatePost(context.Background(), studentActor, dto.CreatePostRequest{
		Title:     "Robotics day",
		Body:      "Details inside",
		Published: true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApprovalPending, post.ApprovalStatus)
	assert.True(t, post.Published)
	assert.False(t, post.PubliclyVisible(), "published alone never makes a post visible")
	assert.Equal(t, studentActor.AccountID, post.AuthorID)
}

func TestCreatePostRejectsBlankContent(t *testing.T) {
	svc := newPostServiceForTest(newMemPostStore())

	_, err := svc.CreatePost(context.Background(), studentActor, dto.CreatePostRequest{Title: "   ", Body: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.CreatePost(context.Background(), studentActor, dto.CreatePostRequest{Title: "x", Body: " "})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestGetPostVisibility(t *testing.T) {
	store := newMemPostStore()
	hidden := store.add(models.Post{
		AuthorID:       studentActor.AccountID,
		Title:          "Draft",
		Body:           "wip",
		ApprovalStatus: models.ApprovalPending,
		Published:      true,
	})
	svc := newPostServiceForTest(store)
	ctx := context.Background()

	t.Run("anonymous caller gets not-found", func(t *testing.T) {
		_, err := svc.GetPost(ctx, nil, hidden.ID)
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})

	t.Run("another member gets not-found", func(t *testing.T) {
		other := models.Actor{AccountID: 99, Role: models.RoleStudent}
		_, err := svc.GetPost(ctx, &other, hidden.ID)
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})

	t.Run("the author sees the pending post", func(t *testing.T) {
		post, err := svc.GetPost(ctx, &studentActor, hidden.ID)
		require.NoError(t, err)
		assert.Equal(t, hidden.ID, post.ID)
	})

	t.Run("a moderator sees the pending post", func(t *testing.T) {
		post, err := svc.GetPost(ctx, &adminActor, hidden.ID)
		require.NoError(t, err)
		assert.Equal(t, hidden.ID, post.ID)
	})
}

func TestListPublicPostsFiltersHidden(t *testing.T) {
	store := newMemPostStore()
	visible := publicPost(store, 1)
	store.add(models.Post{Title: "pending", Body: "x", ApprovalStatus: models.ApprovalPending, Published: true})
	store.add(models.Post{Title: "unpublished", Body: "x", ApprovalStatus: models.ApprovalApproved, Published: false})
	store.add(models.Post{Title: "rejected", Body: "x", ApprovalStatus: models.ApprovalRejected, Published: true})
	svc := newPostServiceForTest(store)

	posts, total, err := svc.ListPublicPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.ID, posts[0].ID)
}

func TestSetPostApproval(t *testing.T) {
	tests := []struct {
		name    string
		actor   models.Actor
		current models.ApprovalStatus
		next    models.ApprovalStatus
		wantErr error
	}{
		{name: "admin approves a pending post", actor: adminActor, current: models.ApprovalPending, next: models.ApprovalApproved},
		{name: "super admin rejects a pending post", actor: superAdminActor, current: models.ApprovalPending, next: models.ApprovalRejected},
		{name: "approved post can be pulled back to rejected", actor: adminActor, current: models.ApprovalApproved, next: models.ApprovalRejected},
		{name: "same status is a no-op", actor: adminActor, current: models.ApprovalApproved, next: models.ApprovalApproved},
		{name: "nothing moves back to pending", actor: adminActor, current: models.ApprovalRejected, next: models.ApprovalPending, wantErr: apperrors.ErrInvalidTransition},
		{name: "students cannot moderate", actor: studentActor, current: models.ApprovalPending, next: models.ApprovalApproved, wantErr: apperrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemPostStore()
			post := store.add(models.Post{Title: "t", Body: "b", ApprovalStatus: tt.current})
			svc := newPostServiceForTest(store)

			updated, err := svc.SetApproval(context.Background(), tt.actor, post.ID, tt.next)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, updated.ApprovalStatus)
		})
	}
}

func TestSetFeatured(t *testing.T) {
	store := newMemPostStore()
	post := publicPost(store, 1)
	svc := newPostServiceForTest(store)
	ctx := context.Background()

	updated, err := svc.SetFeatured(ctx, adminActor, post.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Featured)

	_, err = svc.SetFeatured(ctx, studentActor, post.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestLikeIsIdempotent(t *testing.T) {
	store := newMemPostStore()
	post := publicPost(store, 1)
	svc := newPostServiceForTest(store)
	ctx := context.Background()

	likes, err := svc.Like(ctx, studentActor, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	// A second like from the same account changes nothing and returns no error
	likes, err = svc.Like(ctx, studentActor, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	other := models.Actor{AccountID: 99, Role: models.RoleStudent}
	likes, err = svc.Like(ctx, other, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)
}

func TestUnlikeIsExactInverse(t *testing.T) {
	store := newMemPostStore()
	post := publicPost(store, 1)
	svc := newPostServiceForTest(store)
	ctx := context.Background()

	// Removing a like that was never recorded is a safe no-op
	likes, err := svc.Unlike(ctx, studentActor, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)

	_, err = svc.Like(ctx, studentActor, post.ID)
	require.NoError(t, err)

	likes, err = svc.Unlike(ctx, studentActor, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)

	likes, err = svc.Unlike(ctx, studentActor, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes, "count never goes negative")
}

func TestLikeHiddenPost(t *testing.T) {
	store := newMemPostStore()
	hidden := store.add(models.Post{Title: "t", Body: "b", ApprovalStatus: models.ApprovalPending, Published: true})
	svc := newPostServiceForTest(store)

	_, err := svc.Like(context.Background(), studentActor, hidden.ID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestRegisterView(t *testing.T) {
	store := newMemPostStore()
	post := publicPost(store, 1)
	svc := newPostServiceForTest(store)
	ctx := context.Background()

	views, err := svc.RegisterView(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)

	views, err = svc.RegisterView(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), views, "view counter is monotonic")
}

func TestListModerationQueue(t *testing.T) {
	store := newMemPostStore()
	pending := store.add(models.Post{Title: "p", Body: "b", ApprovalStatus: models.ApprovalPending})
	publicPost(store, 1)
	svc := newPostServiceForTest(store)
	ctx := context.Background()

	posts, total, err := svc.ListModerationQueue(ctx, adminActor, models.ApprovalPending, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, pending.ID, posts[0].ID)

	_, _, err = svc.ListModerationQueue(ctx, studentActor, models.ApprovalPending, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
