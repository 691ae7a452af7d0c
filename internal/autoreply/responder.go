// Package autoreply runs the deferred auto-response jobs: one-shot timers
// deliver jobs to a fixed-size worker pool that generates and persists the
// post author's reply outside the originating request's lifetime.
package autoreply

import (
	"context"
	"log/slog"
	"time"

	"bayou-blog/internal/database"
	"bayou-blog/internal/models"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/router"
	"github.com/asynkron/protoactor-go/scheduler"
	"github.com/google/uuid"
)

// ReplyGenerator is the external "generate reply text" capability.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, postText, commentText string) (string, error)
}

// replyJob carries everything a worker needs. DueAt is the scheduled firing
// time; a job running past the grace window after DueAt is dropped.
type replyJob struct {
	post    *models.Post
	comment *models.Comment
	dueAt   time.Time
}

type replyWorker struct {
	store     database.Store
	generator ReplyGenerator
	grace     time.Duration
	logger    *slog.Logger
}

func (w *replyWorker) Receive(ctx actor.Context) {
	if job, ok := ctx.Message().(*replyJob); ok {
		w.handle(job)
	}
}

// handle is terminal for the job: every failure is logged and swallowed. The
// original request finished long ago, so there is no caller to surface it to,
// and a failed auto-reply never retries.
func (w *replyWorker) handle(job *replyJob) {
	if late := time.Since(job.dueAt); late > w.grace {
		w.logger.Warn("dropping auto-reply past misfire grace window",
			"comment_id", job.comment.ID, "late", late)
		return
	}

	ctx := context.Background()
	text, err := w.generator.GenerateReply(ctx, job.post.Text, job.comment.Text)
	if err != nil {
		w.logger.Error("auto-reply generation failed",
			"post_id", job.post.ID, "comment_id", job.comment.ID, "error", err)
		return
	}

	answered := job.comment.ID
	now := time.Now().UTC()
	reply := &models.Comment{
		ID:                uuid.New(),
		Text:              text,
		PostID:            job.post.ID,
		AuthorID:          job.post.UserID,
		PostAuthorAnswer:  true,
		AnsweredCommentID: &answered,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := w.store.CreateComment(ctx, reply); err != nil {
		w.logger.Error("auto-reply persistence failed",
			"post_id", job.post.ID, "comment_id", job.comment.ID, "error", err)
		return
	}

	w.logger.Info("auto-reply posted",
		"post_id", job.post.ID, "answered_comment_id", job.comment.ID, "reply_id", reply.ID)
}

// AutoResponder schedules one-shot reply jobs against a round-robin pool of
// workers. The pool size is the concurrency ceiling; excess due jobs queue in
// worker mailboxes instead of spawning more goroutines. Timers are in-memory,
// so pending jobs are lost if the process dies.
type AutoResponder struct {
	root   *actor.RootContext
	pool   *actor.PID
	timers *scheduler.TimerScheduler
}

func NewAutoResponder(system *actor.ActorSystem, store database.Store, generator ReplyGenerator, workers int, grace time.Duration, logger *slog.Logger) *AutoResponder {
	if workers <= 0 {
		workers = 3
	}

	props := router.NewRoundRobinPool(workers, actor.WithProducer(func() actor.Actor {
		return &replyWorker{
			store:     store,
			generator: generator,
			grace:     grace,
			logger:    logger,
		}
	}))

	root := system.Root
	return &AutoResponder{
		root:   root,
		pool:   root.Spawn(props),
		timers: scheduler.NewTimerScheduler(root),
	}
}

// ScheduleReply enqueues a job that fires once after the delay. Fire and
// forget: the caller's request completes immediately.
func (r *AutoResponder) ScheduleReply(post *models.Post, comment *models.Comment, delay time.Duration) {
	job := &replyJob{
		post:    post,
		comment: comment,
		dueAt:   time.Now().Add(delay),
	}
	r.timers.SendOnce(delay, r.pool, job)
}

// Stop poisons the worker pool, letting queued jobs drain first.
func (r *AutoResponder) Stop() {
	r.root.Poison(r.pool)
}
