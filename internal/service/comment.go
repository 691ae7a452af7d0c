// internal/service/comment.go
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

// ReplyScheduler enqueues a deferred auto-reply job. Fire and forget: the
// comment-create request completes without waiting for the job.
type ReplyScheduler interface {
	ScheduleReply(post *models.Post, comment *models.Comment, delay time.Duration)
}

// CommentService handles comment CRUD, the moderation gate on creation, the
// daily counters and the auto-response trigger.
type CommentService struct {
	store     database.Store
	gate      *moderation.Gate
	stats     *StatisticsService
	responder ReplyScheduler
	logger    *slog.Logger

	// Unit the owner's configured delay is multiplied by. Tests shrink it so
	// the end-to-end flow runs in milliseconds.
	replyDelayUnit time.Duration
}

func NewCommentService(store database.Store, gate *moderation.Gate, stats *StatisticsService, responder ReplyScheduler, logger *slog.Logger) *CommentService {
	return &CommentService{
		store:          store,
		gate:           gate,
		stats:          stats,
		responder:      responder,
		logger:         logger,
		replyDelayUnit: time.Minute,
	}
}

// Create runs the moderation gate, persists the comment, bumps the created
// counter and, when the post owner has auto-response enabled and is not the
// commenter, schedules the deferred reply. A rejection bumps the blocked
// counter and nothing is persisted.
func (s *CommentService) Create(ctx context.Context, caller *models.User, postID uuid.UUID, text string) (*models.Comment, error) {
	result := s.gate.Validate(ctx, map[string]string{"text": text})
	if result.Status == moderation.StatusRejected {
		if err := s.stats.BumpBlocked(ctx); err != nil {
			s.logger.Error("failed to bump blocked-comments counter", "error", err)
		}
		return nil, gateError(result)
	}
	if err := gateError(result); err != nil {
		return nil, err
	}

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        uuid.New(),
		Text:      text,
		PostID:    post.ID,
		AuthorID:  caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	// The comment is already persisted; a counter failure must not fail the
	// request.
	if err := s.stats.BumpCreated(ctx); err != nil {
		s.logger.Error("failed to bump created-comments counter", "error", err)
	}

	s.maybeScheduleReply(ctx, post, comment)
	return comment, nil
}

func (s *CommentService) maybeScheduleReply(ctx context.Context, post *models.Post, comment *models.Comment) {
	if s.responder == nil {
		return
	}

	owner, err := s.store.GetUser(ctx, post.UserID)
	if err != nil {
		s.logger.Error("failed to load post owner for auto-response", "post_id", post.ID, "error", err)
		return
	}
	if !owner.AutomaticResponseEnabled || owner.ID == comment.AuthorID {
		return
	}

	delay := time.Duration(owner.AutomaticResponseDelayInMinutes) * s.replyDelayUnit
	s.responder.ScheduleReply(post, comment, delay)
	s.logger.Info("auto-reply scheduled",
		"post_id", post.ID, "comment_id", comment.ID, "delay", delay)
}

func (s *CommentService) Get(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	return s.store.GetComment(ctx, commentID)
}

func (s *CommentService) List(ctx context.Context, postID uuid.UUID, page, pageSize int) (*database.Page[models.Comment], error) {
	return s.store.ListComments(ctx, postID, page, pageSize)
}

// Update applies the new text and bumps updated_at. Only the comment's
// author may update it.
func (s *CommentService) Update(ctx context.Context, caller *models.User, commentID uuid.UUID, text *string) (*models.Comment, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != caller.ID {
		return nil, utils.NewAppError(utils.ErrNotAllowed, messages.CommentUpdateNotAllowed, nil)
	}

	if text != nil {
		comment.Text = *text
	}
	comment.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes the comment. Only the comment's author may delete it.
func (s *CommentService) Delete(ctx context.Context, caller *models.User, commentID uuid.UUID) (bool, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return false, err
	}
	if comment.AuthorID != caller.ID {
		return false, utils.NewAppError(utils.ErrNotAllowed, messages.CommentDeleteNotAllowed, nil)
	}
	return s.store.DeleteComment(ctx, commentID)
}
