package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds every repository instance
type Repositories struct {
	Account *AccountRepository
	Post    *PostRepository
	Poll    *PollRepository
}

// NewRepositories creates all repositories over one shared pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Account: NewAccountRepository(pool),
		Post:    NewPostRepository(pool),
		Poll:    NewPollRepository(pool),
	}
}
