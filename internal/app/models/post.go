package models

import (
	"time"
)

// Post defines the blog post model based on the 'posts' table
type Post struct {
	ID             int64          `json:"id" db:"id"`
	AuthorID       int64          `json:"authorId" db:"author_id"`
	Title          string         `json:"title" db:"title"`
	Body           string         `json:"body" db:"body"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus" db:"approval_status"`
	Published      bool           `json:"published" db:"published"` // Draft flag, independent of moderation state
	Featured       bool           `json:"featured" db:"featured"`
	ViewsCount     int64          `json:"viewsCount" db:"views_count"`
	LikesCount     int64          `json:"likesCount" db:"likes_count"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
	Author         *Account       `json:"author,omitempty"` // Relation, no db tag
}

// PubliclyVisible reports whether the post may appear on public listings.
// Both the draft flag and the moderation state must allow it.
func (p *Post) PubliclyVisible() bool {
	return p.Published && p.ApprovalStatus == ApprovalApproved
}
