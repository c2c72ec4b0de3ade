package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
)

// highlightedRanks marks how many top positions the client renders emphasized
const highlightedRanks = 3

// LeaderboardAccountStore is the account surface the leaderboard needs
type LeaderboardAccountStore interface {
	ListApprovedStudents(ctx context.Context) ([]models.Account, error)
}

// LeaderboardService ranks approved students by engagement score
type LeaderboardService interface {
	BuildLeaderboard(ctx context.Context) (*dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	accounts LeaderboardAccountStore
	logger   zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(accounts LeaderboardAccountStore, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		accounts: accounts,
		logger:   logger,
	}
}

// BuildLeaderboard ranks every approved student by engagement score,
// descending. The sort is stable, so accounts with equal scores keep their
// store order (creation time). Ranks are 1-based and dense: ties still get
// distinct consecutive ranks.
func (s *leaderboardService) BuildLeaderboard(ctx context.Context) (*dto.LeaderboardResponse, error) {
	accounts, err := s.accounts.ListApprovedStudents(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load leaderboard accounts")
		return nil, err
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].EngagementScore() > accounts[j].EngagementScore()
	})

	entries := make([]dto.LeaderboardEntry, 0, len(accounts))
	for i := range accounts {
		account := &accounts[i]
		rank := i + 1
		entries = append(entries, dto.LeaderboardEntry{
			Rank:        rank,
			AccountID:   account.ID,
			DisplayName: account.FirstName + " " + account.LastName,
			Level:       account.Level,
			Score:       account.EngagementScore(),
			Highlight:   rank <= highlightedRanks,
		})
	}

	return &dto.LeaderboardResponse{Entries: entries}, nil
}
