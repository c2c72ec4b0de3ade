package models

import (
	"math"
	"time"
)

// PollStatus defines the poll lifecycle state
type PollStatus string

const (
	PollActive PollStatus = "ACTIVE"
	PollClosed PollStatus = "CLOSED"
)

// Poll option count bounds enforced at creation
const (
	MinPollOptions = 2
	MaxPollOptions = 10
)

// Poll defines the poll model based on the 'polls' table
type Poll struct {
	ID        int64        `json:"id" db:"id"`
	Question  string       `json:"question" db:"question"`
	Status    PollStatus   `json:"status" db:"status"`
	CreatedBy int64        `json:"createdBy" db:"created_by"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	ClosedAt  *time.Time   `json:"closedAt,omitempty" db:"closed_at"`
	Options   []PollOption `json:"options"` // Ordered as created, no db tag
}

// PollOption defines one answer of a poll based on the 'poll_options' table
type PollOption struct {
	ID        int64  `json:"id" db:"id"`
	PollID    int64  `json:"pollId" db:"poll_id"`
	Text      string `json:"text" db:"text"`
	Position  int    `json:"position" db:"position"`
	VoteCount int64  `json:"voteCount" db:"vote_count"`
}

// TotalVotes sums the per-option counters
func (p *Poll) TotalVotes() int64 {
	var total int64
	for _, opt := range p.Options {
		total += opt.VoteCount
	}
	return total
}

// HasOption reports whether the option id belongs to this poll
func (p *Poll) HasOption(optionID int64) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// Tally computes the percentage share per option id. Each percentage is
// rounded independently, so the values may not sum to exactly 100; that
// drift is expected, not a bug. With zero votes every option tallies 0.
func (p *Poll) Tally() map[int64]int {
	percentages := make(map[int64]int, len(p.Options))
	total := p.TotalVotes()
	for _, opt := range p.Options {
		if total == 0 {
			percentages[opt.ID] = 0
			continue
		}
		percentages[opt.ID] = int(math.Round(float64(opt.VoteCount) / float64(total) * 100))
	}
	return percentages
}
