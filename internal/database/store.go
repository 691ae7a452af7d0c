package database

import (
	"context"

	"bayou-blog/internal/models"

	"github.com/google/uuid"
)

// StatCounter names one of the two daily counters. Exactly one counter is
// incremented per IncrementDailyCounter call, never both.
type StatCounter string

const (
	CounterCreated StatCounter = "created_comments"
	CounterBlocked StatCounter = "blocked_comments"
)

// Store defines the document-store operations the services depend on.
// MongoDB is the production implementation; MemStore backs the tests.
type Store interface {
	// User methods
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserSettings(ctx context.Context, id uuid.UUID, enabled *bool, delayMinutes *int) (*models.User, error)

	// Post methods
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	SavePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uuid.UUID) (bool, error)
	UserHasPostTitled(ctx context.Context, userID uuid.UUID, title string) (bool, error)
	ListPosts(ctx context.Context, page, pageSize int) (*Page[models.Post], error)

	// Comment methods
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	SaveComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteCommentsForPost(ctx context.Context, postID uuid.UUID) (int64, error)
	ListComments(ctx context.Context, postID uuid.UUID, page, pageSize int) (*Page[models.Comment], error)

	// Daily statistics
	IncrementDailyCounter(ctx context.Context, date string, counter StatCounter) error
	StatisticsRange(ctx context.Context, dateFrom, dateTo string) ([]models.DailyStatistic, error)
}
