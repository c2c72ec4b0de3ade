package services

import (
	"github.com/rs/zerolog"
	"github.com/ykaya/deptportal/internal/app/events"
	"github.com/ykaya/deptportal/internal/app/repositories"
	"github.com/ykaya/deptportal/internal/pkg/auth"
)

// Services holds every service instance
type Services struct {
	Auth        AuthService
	Account     AccountService
	Post        PostService
	Poll        PollService
	Leaderboard LeaderboardService
}

// NewServices creates all services over the shared repositories and bus
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, bus *events.Bus, logger zerolog.Logger) *Services {
	return &Services{
		Auth:        NewAuthService(repos.Account, jwtService, bus, logger),
		Account:     NewAccountService(repos.Account, bus, logger),
		Post:        NewPostService(repos.Post, bus, logger),
		Poll:        NewPollService(repos.Poll, bus, logger),
		Leaderboard: NewLeaderboardService(repos.Account, logger),
	}
}
