// internal/service/post.go
package service

import (
	"context"
	"log/slog"
	"time"

	"bayou-blog/internal/database"
	"bayou-blog/internal/messages"
	"bayou-blog/internal/models"
	"bayou-blog/internal/moderation"
	"bayou-blog/internal/utils"

	"github.com/google/uuid"
)

// PostService handles post CRUD with ownership checks and the
// duplicate-title guard.
type PostService struct {
	store  database.Store
	gate   *moderation.Gate
	logger *slog.Logger
}

func NewPostService(store database.Store, gate *moderation.Gate, logger *slog.Logger) *PostService {
	return &PostService{store: store, gate: gate, logger: logger}
}

// Create persists a new post. The moderation gate runs first, then the
// duplicate-title check: an exact, case-sensitive match against the owner's
// existing posts. The check-then-insert is not atomic (see DESIGN.md).
func (s *PostService) Create(ctx context.Context, caller *models.User, title, text string) (*models.Post, error) {
	if err := gateError(s.gate.Validate(ctx, map[string]string{"title": title, "text": text})); err != nil {
		return nil, err
	}

	exists, err := s.store.UserHasPostTitled(ctx, caller.ID, title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewAppError(utils.ErrDuplicatePostTitle, messages.PostAlreadyExists, nil)
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.New(),
		Title:     title,
		Text:      text,
		UserID:    caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "user_id", caller.ID)
	return post, nil
}

func (s *PostService) Get(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	return s.store.GetPost(ctx, postID)
}

func (s *PostService) List(ctx context.Context, page, pageSize int) (*database.Page[models.Post], error) {
	return s.store.ListPosts(ctx, page, pageSize)
}

// Update applies the fields present in the partial payload and bumps
// updated_at. Only the owner may update.
func (s *PostService) Update(ctx context.Context, caller *models.User, postID uuid.UUID, title, text *string) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != caller.ID {
		return nil, utils.NewAppError(utils.ErrNotAllowed, messages.PostEditNotAllowed, nil)
	}

	if title != nil {
		post.Title = *title
	}
	if text != nil {
		post.Text = *text
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post and cascades to every comment referencing it. The
// returned bool reports whether the post itself was removed; the cascade
// count is logged, not reported.
func (s *PostService) Delete(ctx context.Context, caller *models.User, postID uuid.UUID) (bool, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return false, err
	}
	if post.UserID != caller.ID {
		return false, utils.NewAppError(utils.ErrNotAllowed, messages.PostDeleteNotAllowed, nil)
	}

	removedComments, err := s.store.DeleteCommentsForPost(ctx, postID)
	if err != nil {
		return false, err
	}

	deleted, err := s.store.DeletePost(ctx, postID)
	if err != nil {
		return false, err
	}

	s.logger.Info("post deleted", "post_id", postID, "cascaded_comments", removedComments)
	return deleted, nil
}
