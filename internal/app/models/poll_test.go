package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pollWithCounts(counts ...int64) *Poll {
	poll := &Poll{ID: 1, Status: PollActive}
	for i, count := range counts {
		poll.Options = append(poll.Options, PollOption{
			ID:        int64(i + 1),
			PollID:    poll.ID,
			Position:  i,
			VoteCount: count,
		})
	}
	return poll
}

func TestTotalVotes(t *testing.T) {
	assert.Equal(t, int64(6), pollWithCounts(1, 2, 3).TotalVotes())
	assert.Zero(t, pollWithCounts(0, 0).TotalVotes())
}

func TestHasOption(t *testing.T) {
	poll := pollWithCounts(0, 0)
	assert.True(t, poll.HasOption(1))
	assert.True(t, poll.HasOption(2))
	assert.False(t, poll.HasOption(3))
}

func TestTally(t *testing.T) {
	t.Run("zero votes tallies zero everywhere", func(t *testing.T) {
		tally := pollWithCounts(0, 0, 0).Tally()
		assert.Equal(t, map[int64]int{1: 0, 2: 0, 3: 0}, tally)
	})

	t.Run("even split", func(t *testing.T) {
		tally := pollWithCounts(2, 2).Tally()
		assert.Equal(t, map[int64]int{1: 50, 2: 50}, tally)
	})

	t.Run("each percentage rounds independently", func(t *testing.T) {
		// 1/3 each rounds to 33, the column sums to 99 and that is fine
		tally := pollWithCounts(1, 1, 1).Tally()
		assert.Equal(t, map[int64]int{1: 33, 2: 33, 3: 33}, tally)
	})

	t.Run("rounding can overshoot 100", func(t *testing.T) {
		// 1/6 rounds to 17, so 17+17+17+17+17+17 > 100
		tally := pollWithCounts(1, 1, 1, 1, 1, 1).Tally()
		sum := 0
		for _, pct := range tally {
			assert.Equal(t, 17, pct)
			sum += pct
		}
		assert.Equal(t, 102, sum)
	})

	t.Run("half rounds up", func(t *testing.T) {
		// 1/8 = 12.5 rounds to 13
		tally := pollWithCounts(1, 7).Tally()
		assert.Equal(t, 13, tally[1])
		assert.Equal(t, 88, tally[2])
	})
}
