package dto

import (
	"time"

	"github.com/ykaya/deptportal/internal/app/models"
)

// PostResponse is the public representation of a blog post
type PostResponse struct {
	ID             int64     `json:"id" example:"1"`
	AuthorID       int64     `json:"authorId" example:"7"`
	Title          string    `json:"title" example:"Department robotics day"`
	Body           string    `json:"body"`
	ApprovalStatus string    `json:"approvalStatus" example:"APPROVED"`
	Published      bool      `json:"published" example:"true"`
	Featured       bool      `json:"featured" example:"false"`
	ViewsCount     int64     `json:"viewsCount" example:"120"`
	LikesCount     int64     `json:"likesCount" example:"14"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewPostResponse maps a model post to its response shape
func NewPostResponse(post *models.Post) PostResponse {
	return PostResponse{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		Title:          post.Title,
		Body:           post.Body,
		ApprovalStatus: string(post.ApprovalStatus),
		Published:      post.Published,
		Featured:       post.Featured,
		ViewsCount:     post.ViewsCount,
		LikesCount:     post.LikesCount,
		CreatedAt:      post.CreatedAt,
	}
}

// PostListResponse is a paginated list of posts
type PostListResponse struct {
	Posts          []PostResponse `json:"posts"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// CreatePostRequest is the payload for POST /posts
type CreatePostRequest struct {
	Title     string `json:"title" binding:"required,max=200" example:"Department robotics day"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published" example:"false"`
}

// SetPostApprovalRequest is the payload for PUT /content/{id}/approval
type SetPostApprovalRequest struct {
	Status string `json:"status" binding:"required,approvalstatus" example:"APPROVED"`
}

// SetPostFeaturedRequest is the payload for PUT /content/{id}/featured
type SetPostFeaturedRequest struct {
	Featured bool `json:"featured" example:"true"`
}

// LikeCountResponse returns the resulting like counter so the client can
// reconcile an optimistic UI update
type LikeCountResponse struct {
	LikesCount int64 `json:"likesCount" example:"15"`
}

// ViewCountResponse returns the resulting view counter
type ViewCountResponse struct {
	ViewsCount int64 `json:"viewsCount" example:"121"`
}
