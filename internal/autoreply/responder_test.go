package autoreply

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"bayou-blog/internal/database"
	"bayou-blog/internal/models"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) GenerateReply(_ context.Context, _, _ string) (string, error) {
	return g.reply, g.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedThread(t *testing.T, store *database.MemStore) (*models.Post, *models.Comment) {
	t.Helper()
	ctx := context.Background()

	owner := &models.User{ID: uuid.New(), Email: "owner@example.com"}
	require.NoError(t, store.CreateUser(ctx, owner))

	post := &models.Post{ID: uuid.New(), Title: "post", Text: "post body", UserID: owner.ID}
	require.NoError(t, store.CreatePost(ctx, post))

	comment := &models.Comment{ID: uuid.New(), Text: "reader comment", PostID: post.ID, AuthorID: uuid.New()}
	require.NoError(t, store.CreateComment(ctx, comment))

	return post, comment
}

func TestAutoReplyEndToEnd(t *testing.T) {
	store := database.NewMemStore()
	post, comment := seedThread(t, store)

	system := actor.NewActorSystem()
	responder := NewAutoResponder(system, store, &stubGenerator{reply: "thanks for reading"},
		3, time.Hour, testLogger())
	defer responder.Stop()

	responder.ScheduleReply(post, comment, time.Millisecond)

	require.Eventually(t, func() bool {
		page, err := store.ListComments(context.Background(), post.ID, 1, 10)
		return err == nil && page.TotalItemsCount == 2
	}, 2*time.Second, 5*time.Millisecond)

	page, err := store.ListComments(context.Background(), post.ID, 1, 10)
	require.NoError(t, err)

	var reply *models.Comment
	for i := range page.Items {
		if page.Items[i].PostAuthorAnswer {
			reply = &page.Items[i]
		}
	}
	require.NotNil(t, reply)
	assert.Equal(t, "thanks for reading", reply.Text)
	assert.Equal(t, post.UserID, reply.AuthorID)
	require.NotNil(t, reply.AnsweredCommentID)
	assert.Equal(t, comment.ID, *reply.AnsweredCommentID)
}

func TestWorkerDropsJobPastGrace(t *testing.T) {
	store := database.NewMemStore()
	post, comment := seedThread(t, store)

	worker := &replyWorker{
		store:     store,
		generator: &stubGenerator{reply: "too late"},
		grace:     time.Second,
		logger:    testLogger(),
	}
	worker.handle(&replyJob{
		post:    post,
		comment: comment,
		dueAt:   time.Now().Add(-2 * time.Second),
	})

	page, err := store.ListComments(context.Background(), post.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItemsCount)
}

func TestWorkerSwallowsGeneratorFailure(t *testing.T) {
	store := database.NewMemStore()
	post, comment := seedThread(t, store)

	worker := &replyWorker{
		store:     store,
		generator: &stubGenerator{err: errors.New("model unavailable")},
		grace:     time.Hour,
		logger:    testLogger(),
	}
	worker.handle(&replyJob{post: post, comment: comment, dueAt: time.Now()})

	page, err := store.ListComments(context.Background(), post.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItemsCount)
}

func TestWorkerInsideGraceStillReplies(t *testing.T) {
	store := database.NewMemStore()
	post, comment := seedThread(t, store)

	worker := &replyWorker{
		store:     store,
		generator: &stubGenerator{reply: "still in time"},
		grace:     time.Hour,
		logger:    testLogger(),
	}
	worker.handle(&replyJob{
		post:    post,
		comment: comment,
		dueAt:   time.Now().Add(-30 * time.Minute),
	})

	page, err := store.ListComments(context.Background(), post.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItemsCount)
}
