package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/app/repositories"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
)

func profileUpdate(firstName, lastName, level *string, profileCompletion *int) dto.UpdateProfileRequest {
	return dto.UpdateProfileRequest{
		FirstName:         firstName,
		LastName:          lastName,
		Level:             level,
		ProfileCompletion: profileCompletion,
	}
}

// In-memory stores with the same semantics as the SQL repositories,
// including the atomic-update guards, so the services can be tested without
// a database.

type memAccountStore struct {
	mu       sync.Mutex
	seq      int64
	accounts map[int64]models.Account
}

func newMemAccountStore() *memAccountStore {
	return &memAccountStore{accounts: make(map[int64]models.Account)}
}

func (s *memAccountStore) add(account models.Account) models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	account.ID = s.seq
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Unix(s.seq, 0)
	}
	s.accounts[account.ID] = account
	return account
}

func (s *memAccountStore) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}
	s.seq++
	created := *account
	created.ID = s.seq
	created.CreatedAt = time.Unix(s.seq, 0)
	s.accounts[created.ID] = created
	return &created, nil
}

func (s *memAccountStore) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &account, nil
}

func (s *memAccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (s *memAccountStore) sortedAccounts() []models.Account {
	accounts := make([]models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts
}

func (s *memAccountStore) ListByApprovalStatus(ctx context.Context, status models.ApprovalStatus, page, pageSize int) ([]models.Account, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Account
	for _, account := range s.sortedAccounts() {
		if account.ApprovalStatus == status {
			matched = append(matched, account)
		}
	}
	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *memAccountStore) ListApprovedStudents(ctx context.Context) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Account
	for _, account := range s.sortedAccounts() {
		if account.ApprovalStatus == models.ApprovalApproved && account.Role == models.RoleStudent {
			matched = append(matched, account)
		}
	}
	return matched, nil
}

func (s *memAccountStore) UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	account.ApprovalStatus = status
	s.accounts[id] = account
	return &account, nil
}

func (s *memAccountStore) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if account.Role == models.RoleSuperAdmin {
		return nil, apperrors.ErrInvalidTransition
	}
	account.Role = role
	s.accounts[id] = account
	return &account, nil
}

func (s *memAccountStore) UpdateProfile(ctx context.Context, id int64, firstName, lastName, level *string, profileCompletion *int) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if firstName != nil {
		account.FirstName = *firstName
	}
	if lastName != nil {
		account.LastName = *lastName
	}
	if level != nil {
		account.Level = *level
	}
	if profileCompletion != nil {
		account.ProfileCompletion = *profileCompletion
	}
	s.accounts[id] = account
	return &account, nil
}

type memPostStore struct {
	mu    sync.Mutex
	seq   int64
	posts map[int64]models.Post
	likes map[int64]map[int64]bool
}

func newMemPostStore() *memPostStore {
	return &memPostStore{
		posts: make(map[int64]models.Post),
		likes: make(map[int64]map[int64]bool),
	}
}

func (s *memPostStore) add(post models.Post) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	post.ID = s.seq
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Unix(s.seq, 0)
	}
	s.posts[post.ID] = post
	return post
}

func (s *memPostStore) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	created := *post
	created.ID = s.seq
	created.CreatedAt = time.Unix(s.seq, 0)
	s.posts[created.ID] = created
	return &created, nil
}

func (s *memPostStore) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return &post, nil
}

func (s *memPostStore) List(ctx context.Context, filter repositories.PostFilter) ([]models.Post, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Post
	for _, post := range s.posts {
		if filter.PublicOnly && !post.PubliclyVisible() {
			continue
		}
		if filter.Status != nil && post.ApprovalStatus != *filter.Status {
			continue
		}
		if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
			continue
		}
		matched = append(matched, post)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, int64(len(matched)), nil
}

func (s *memPostStore) UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	post.ApprovalStatus = status
	s.posts[id] = post
	return &post, nil
}

func (s *memPostStore) SetFeatured(ctx context.Context, id int64, featured bool) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	post.Featured = featured
	s.posts[id] = post
	return &post, nil
}

func (s *memPostStore) Like(ctx context.Context, postID, accountID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return 0, apperrors.ErrPostNotFound
	}
	if s.likes[postID] == nil {
		s.likes[postID] = make(map[int64]bool)
	}
	if !s.likes[postID][accountID] {
		s.likes[postID][accountID] = true
		post.LikesCount++
		s.posts[postID] = post
	}
	return post.LikesCount, nil
}

func (s *memPostStore) Unlike(ctx context.Context, postID, accountID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return 0, apperrors.ErrPostNotFound
	}
	if s.likes[postID][accountID] {
		delete(s.likes[postID], accountID)
		if post.LikesCount > 0 {
			post.LikesCount--
		}
		s.posts[postID] = post
	}
	return post.LikesCount, nil
}

func (s *memPostStore) IncrementViews(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return 0, apperrors.ErrPostNotFound
	}
	post.ViewsCount++
	s.posts[id] = post
	return post.ViewsCount, nil
}

type memPollStore struct {
	mu        sync.Mutex
	pollSeq   int64
	optionSeq int64
	polls     map[int64]models.Poll
	votes     map[int64]map[int64]int64 // pollID -> accountID -> optionID
}

func newMemPollStore() *memPollStore {
	return &memPollStore{
		polls: make(map[int64]models.Poll),
		votes: make(map[int64]map[int64]int64),
	}
}

func (s *memPollStore) Create(ctx context.Context, poll *models.Poll, options []string) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollSeq++
	created := *poll
	created.ID = s.pollSeq
	created.Status = models.PollActive
	created.CreatedAt = time.Unix(s.pollSeq, 0)
	for position, text := range options {
		s.optionSeq++
		created.Options = append(created.Options, models.PollOption{
			ID:       s.optionSeq,
			PollID:   created.ID,
			Text:     text,
			Position: position,
		})
	}
	s.polls[created.ID] = created
	return &created, nil
}

func (s *memPollStore) GetByID(ctx context.Context, id int64) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return nil, apperrors.ErrPollNotFound
	}
	snapshot := poll
	snapshot.Options = append([]models.PollOption(nil), poll.Options...)
	return &snapshot, nil
}

func (s *memPollStore) List(ctx context.Context, status *models.PollStatus, page, pageSize int) ([]models.Poll, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Poll
	for _, poll := range s.polls {
		if status != nil && poll.Status != *status {
			continue
		}
		matched = append(matched, poll)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return matched, int64(len(matched)), nil
}

func (s *memPollStore) Close(ctx context.Context, id int64) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return nil, apperrors.ErrPollNotFound
	}
	if poll.Status != models.PollActive {
		return nil, apperrors.ErrInvalidTransition
	}
	now := time.Now()
	poll.Status = models.PollClosed
	poll.ClosedAt = &now
	s.polls[id] = poll
	return &poll, nil
}

func (s *memPollStore) Vote(ctx context.Context, pollID, optionID, accountID int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[pollID]
	if !ok || poll.Status != models.PollActive {
		return 0, false, nil
	}
	optionIdx := -1
	for i, opt := range poll.Options {
		if opt.ID == optionID {
			optionIdx = i
			break
		}
	}
	if optionIdx < 0 {
		return 0, false, nil
	}
	if s.votes[pollID] == nil {
		s.votes[pollID] = make(map[int64]int64)
	}
	if _, voted := s.votes[pollID][accountID]; voted {
		return 0, false, nil
	}
	s.votes[pollID][accountID] = optionID
	poll.Options[optionIdx].VoteCount++
	s.polls[pollID] = poll
	return poll.Options[optionIdx].VoteCount, true, nil
}

func (s *memPollStore) HasVoted(ctx context.Context, pollID, accountID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, voted := s.votes[pollID][accountID]
	return voted, nil
}
