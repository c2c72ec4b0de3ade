package dto

import (
	"time"

	"github.com/ykaya/deptportal/internal/app/models"
)

// PollOptionResponse is one option of a poll snapshot. Percentage values are
// rounded per option and may not sum to exactly 100.
type PollOptionResponse struct {
	ID         int64  `json:"id" example:"3"`
	Text       string `json:"text" example:"Tuesday"`
	VoteCount  int64  `json:"voteCount" example:"12"`
	Percentage int    `json:"percentage" example:"60"`
}

// PollResponse is a poll snapshot with per-option vote counts
type PollResponse struct {
	ID         int64                `json:"id" example:"1"`
	Question   string               `json:"question" example:"Best day for the seminar?"`
	Status     string               `json:"status" example:"ACTIVE"`
	TotalVotes int64                `json:"totalVotes" example:"20"`
	Options    []PollOptionResponse `json:"options"`
	CreatedAt  time.Time            `json:"createdAt"`
	ClosedAt   *time.Time           `json:"closedAt,omitempty"`
}

// NewPollResponse maps a poll and its tally to the response shape
func NewPollResponse(poll *models.Poll) PollResponse {
	tally := poll.Tally()
	options := make([]PollOptionResponse, 0, len(poll.Options))
	for _, opt := range poll.Options {
		options = append(options, PollOptionResponse{
			ID:         opt.ID,
			Text:       opt.Text,
			VoteCount:  opt.VoteCount,
			Percentage: tally[opt.ID],
		})
	}
	return PollResponse{
		ID:         poll.ID,
		Question:   poll.Question,
		Status:     string(poll.Status),
		TotalVotes: poll.TotalVotes(),
		Options:    options,
		CreatedAt:  poll.CreatedAt,
		ClosedAt:   poll.ClosedAt,
	}
}

// PollListResponse is a paginated list of polls
type PollListResponse struct {
	Polls          []PollResponse `json:"polls"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// CreatePollRequest is the payload for POST /polls
type CreatePollRequest struct {
	Question string   `json:"question" binding:"required,max=300" example:"Best day for the seminar?"`
	Options  []string `json:"options" binding:"required,min=2,max=10"`
}

// VoteRequest is the payload for POST /polls/{id}/vote
type VoteRequest struct {
	OptionID int64 `json:"optionId" binding:"required" example:"3"`
}
