// internal/database/memstore.go
package database

import (
	"context"
	"sync"

	"bayou-blog/internal/messages"
	"bayou-blog/internal/models"
	"bayou-blog/internal/utils"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store with the same visible semantics as MongoDB:
// insertion order, unique emails, pagination envelope, atomic counters. It
// backs the test suites.
type MemStore struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]*models.User
	emails   map[string]uuid.UUID
	posts    []*models.Post
	comments []*models.Comment
	stats    map[string]*models.DailyStatistic
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:  make(map[uuid.UUID]*models.User),
		emails: make(map[string]uuid.UUID),
		stats:  make(map[string]*models.DailyStatistic),
	}
}

func (s *MemStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[user.Email]; exists {
		return utils.NewAppError(utils.ErrUserAlreadyExists, messages.UserAlreadyExists, nil)
	}
	clone := *user
	s.users[user.ID] = &clone
	s.emails[user.Email] = user.ID
	return nil
}

func (s *MemStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, messages.UserNotFound, nil)
	}
	clone := *user
	return &clone, nil
}

func (s *MemStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, messages.UserNotFound, nil)
	}
	clone := *s.users[id]
	return &clone, nil
}

func (s *MemStore) UpdateUserSettings(_ context.Context, id uuid.UUID, enabled *bool, delayMinutes *int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, messages.UserNotFound, nil)
	}
	if enabled != nil {
		user.AutomaticResponseEnabled = *enabled
	}
	if delayMinutes != nil {
		user.AutomaticResponseDelayInMinutes = *delayMinutes
	}
	clone := *user
	return &clone, nil
}

func (s *MemStore) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *post
	s.posts = append(s.posts, &clone)
	return nil
}

func (s *MemStore) GetPost(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.posts {
		if post.ID == id {
			clone := *post
			return &clone, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrPostNotFound, messages.PostNotFound, nil)
}

func (s *MemStore) SavePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.posts {
		if existing.ID == post.ID {
			clone := *post
			s.posts[i] = &clone
			return nil
		}
	}
	clone := *post
	s.posts = append(s.posts, &clone)
	return nil
}

func (s *MemStore) DeletePost(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, post := range s.posts {
		if post.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) UserHasPostTitled(_ context.Context, userID uuid.UUID, title string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.posts {
		if post.UserID == userID && post.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) ListPosts(_ context.Context, page, pageSize int) (*Page[models.Post], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		matched = append(matched, *post)
	}
	return pageOf(matched, page, pageSize), nil
}

func (s *MemStore) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *comment
	s.comments = append(s.comments, &clone)
	return nil
}

func (s *MemStore) GetComment(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, comment := range s.comments {
		if comment.ID == id {
			clone := *comment
			return &clone, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrCommentNotFound, messages.CommentNotFound, nil)
}

func (s *MemStore) SaveComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.comments {
		if existing.ID == comment.ID {
			clone := *comment
			s.comments[i] = &clone
			return nil
		}
	}
	clone := *comment
	s.comments = append(s.comments, &clone)
	return nil
}

func (s *MemStore) DeleteComment(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, comment := range s.comments {
		if comment.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) DeleteCommentsForPost(_ context.Context, postID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.comments[:0]
	var removed int64
	for _, comment := range s.comments {
		if comment.PostID == postID {
			removed++
			continue
		}
		kept = append(kept, comment)
	}
	s.comments = kept
	return removed, nil
}

func (s *MemStore) ListComments(_ context.Context, postID uuid.UUID, page, pageSize int) (*Page[models.Comment], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Comment, 0, len(s.comments))
	for _, comment := range s.comments {
		if comment.PostID == postID {
			matched = append(matched, *comment)
		}
	}
	return pageOf(matched, page, pageSize), nil
}

func (s *MemStore) IncrementDailyCounter(_ context.Context, date string, counter StatCounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.stats[date]
	if !ok {
		record = &models.DailyStatistic{Date: date}
		s.stats[date] = record
	}
	if counter == CounterBlocked {
		record.BlockedComments++
	} else {
		record.CreatedComments++
	}
	return nil
}

func (s *MemStore) StatisticsRange(_ context.Context, dateFrom, dateTo string) ([]models.DailyStatistic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make([]models.DailyStatistic, 0, len(s.stats))
	for date, record := range s.stats {
		if date >= dateFrom && date <= dateTo {
			stats = append(stats, *record)
		}
	}
	// Ascending by date, matching the Mongo sort.
	for i := 1; i < len(stats); i++ {
		for j := i; j > 0 && stats[j-1].Date > stats[j].Date; j-- {
			stats[j-1], stats[j] = stats[j], stats[j-1]
		}
	}
	return stats, nil
}

// pageOf slices the offset window out of already-matched items, the same way
// the aggregation pipeline's $slice stage does.
func pageOf[T any](matched []T, page, pageSize int) *Page[T] {
	result := &Page[T]{
		Items:           []T{},
		TotalItemsCount: len(matched),
		Page:            page,
		PageSize:        pageSize,
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return result
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	result.Items = append(result.Items, matched[start:end]...)
	return result
}
