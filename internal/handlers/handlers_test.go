package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bayou-blog/internal/auth"
	"bayou-blog/internal/database"
	"bayou-blog/internal/messages"
	"bayou-blog/internal/moderation"
	"bayou-blog/internal/service"
	"bayou-blog/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	t       *testing.T
	handler http.Handler
	store   *database.MemStore
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := database.NewMemStore()
	gate := moderation.NewGate(false, nil, logger)
	tokens := auth.NewTokenService("test-secret", 15*time.Minute)

	statistics := service.NewStatisticsService(store)
	users := service.NewUserService(store, logger)
	posts := service.NewPostService(store, gate, logger)
	comments := service.NewCommentService(store, gate, statistics, nil, logger)

	server := NewServer(users, posts, comments, statistics, tokens, utils.NewMetricsCollector(), logger)
	return &apiFixture{t: t, handler: server.Routes(store), store: store}
}

func (f *apiFixture) do(method, path, token string, payload any) *httptest.ResponseRecorder {
	f.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(f.t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) decode(rec *httptest.ResponseRecorder, dst any) {
	f.t.Helper()
	require.NoError(f.t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func (f *apiFixture) registerAndLogin(email string) string {
	f.t.Helper()
	credentials := map[string]string{"email": email, "password": "hunter2"}

	rec := f.do(http.MethodPost, "/api/v1/users/", "", credentials)
	require.Equal(f.t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/auth/login", "", credentials)
	require.Equal(f.t, http.StatusOK, rec.Code)

	var body map[string]string
	f.decode(rec, &body)
	require.Equal(f.t, "bearer", body["token_type"])
	require.NotEmpty(f.t, body["access_token"])
	return body["access_token"]
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAPIFixture(t)
	f.registerAndLogin("alice@example.com")

	rec := f.do(http.MethodPost, "/api/v1/users/", "", map[string]string{
		"email": "alice@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	f.decode(rec, &body)
	assert.Equal(t, messages.UserAlreadyExists, body["detail"])
}

func TestRegisterInvalidEmail(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/users/", "", map[string]string{
		"email": "not-an-email", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAPIFixture(t)
	f.registerAndLogin("alice@example.com")

	rec := f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	f.decode(rec, &body)
	assert.Equal(t, messages.IncorrectLoginInput, body["detail"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/posts/", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	f.decode(rec, &body)
	assert.Equal(t, messages.NotAuthenticated, body["detail"])
}

func TestPostLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")

	rec := f.do(http.MethodPost, "/api/v1/posts/", token, map[string]string{
		"title": "First post", "text": "Hello world",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	f.decode(rec, &created)
	postID := created["id"].(string)

	rec = f.do(http.MethodGet, "/api/v1/posts/"+postID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPatch, "/api/v1/posts/"+postID, token, map[string]string{"title": "Edited"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated map[string]any
	f.decode(rec, &updated)
	assert.Equal(t, "Edited", updated["title"])
	assert.Equal(t, "Hello world", updated["text"])

	rec = f.do(http.MethodDelete, "/api/v1/posts/"+postID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/posts/"+postID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostForeignEditIsBadRequest(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.registerAndLogin("alice@example.com")
	bob := f.registerAndLogin("bob@example.com")

	rec := f.do(http.MethodPost, "/api/v1/posts/", alice, map[string]string{
		"title": "Alice's post", "text": "text",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	f.decode(rec, &created)
	postID := created["id"].(string)

	rec = f.do(http.MethodPatch, "/api/v1/posts/"+postID, bob, map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	f.decode(rec, &body)
	assert.Equal(t, messages.PostEditNotAllowed, body["detail"])
}

func TestDuplicateTitleIsBadRequest(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")

	payload := map[string]string{"title": "Same title", "text": "text"}
	rec := f.do(http.MethodPost, "/api/v1/posts/", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/posts/", token, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	f.decode(rec, &body)
	assert.Equal(t, messages.PostAlreadyExists, body["detail"])
}

func TestListPostsEnvelope(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")

	for _, title := range []string{"a", "b", "c"} {
		rec := f.do(http.MethodPost, "/api/v1/posts/", token, map[string]string{"title": title, "text": "x"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := f.do(http.MethodGet, "/api/v1/posts/?page=2&page_size=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items           []map[string]any `json:"items"`
		TotalItemsCount int              `json:"total_items_count"`
		Page            int              `json:"page"`
		PageSize        int              `json:"page_size"`
	}
	f.decode(rec, &page)
	assert.Equal(t, 3, page.TotalItemsCount)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c", page.Items[0]["title"])
}

func TestListPostsInvalidPagination(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")

	for _, query := range []string{"?page=0", "?page_size=-1", "?page=abc"} {
		rec := f.do(http.MethodGet, "/api/v1/posts/"+query, token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		f.decode(rec, &body)
		assert.Equal(t, messages.InvalidPagination, body["detail"])
	}
}

func TestCommentLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.registerAndLogin("alice@example.com")
	bob := f.registerAndLogin("bob@example.com")

	rec := f.do(http.MethodPost, "/api/v1/posts/", alice, map[string]string{"title": "Post", "text": "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post map[string]any
	f.decode(rec, &post)
	postID := post["id"].(string)

	rec = f.do(http.MethodPost, "/api/v1/posts/"+postID+"/comments/", bob, map[string]string{"text": "nice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var comment map[string]any
	f.decode(rec, &comment)
	commentID := comment["id"].(string)
	assert.Equal(t, false, comment["post_author_answer"])

	rec = f.do(http.MethodGet, "/api/v1/posts/"+postID+"/comments/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPatch, "/api/v1/posts/"+postID+"/comments/"+commentID, bob, map[string]string{"text": "edited"})
	require.Equal(t, http.StatusOK, rec.Code)

	// The post owner is not the comment's author.
	rec = f.do(http.MethodDelete, "/api/v1/posts/"+postID+"/comments/"+commentID, alice, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodDelete, "/api/v1/posts/"+postID+"/comments/"+commentID, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted map[string]bool
	f.decode(rec, &deleted)
	assert.True(t, deleted["deleted"])
}

func TestSettingsRoundtrip(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")

	rec := f.do(http.MethodGet, "/api/v1/posts/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	user, err := f.store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	rec = f.do(http.MethodGet, "/api/v1/users/"+user.ID.String()+"/settings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings map[string]any
	f.decode(rec, &settings)
	assert.Equal(t, false, settings["automatic_response_enabled"])
	assert.Equal(t, float64(1), settings["automatic_response_delay_in_minutes"])

	rec = f.do(http.MethodPatch, "/api/v1/users/"+user.ID.String()+"/settings", token, map[string]any{
		"automatic_response_enabled":          true,
		"automatic_response_delay_in_minutes": 45,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	f.decode(rec, &settings)
	assert.Equal(t, true, settings["automatic_response_enabled"])
	assert.Equal(t, float64(45), settings["automatic_response_delay_in_minutes"])
}

func TestSettingsDelayBounds(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")

	user, err := f.store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	for _, delay := range []int{0, -5, 601} {
		rec := f.do(http.MethodPatch, "/api/v1/users/"+user.ID.String()+"/settings", token, map[string]any{
			"automatic_response_delay_in_minutes": delay,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestForeignSettingsIsBadRequest(t *testing.T) {
	f := newAPIFixture(t)
	f.registerAndLogin("alice@example.com")
	bob := f.registerAndLogin("bob@example.com")

	alice, err := f.store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	rec := f.do(http.MethodGet, "/api/v1/users/"+alice.ID.String()+"/settings", bob, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	f.decode(rec, &body)
	assert.Equal(t, messages.SettingsNotAllowed, body["detail"])
}

func TestStatisticsBreakdown(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.registerAndLogin("alice@example.com")
	bob := f.registerAndLogin("bob@example.com")

	rec := f.do(http.MethodPost, "/api/v1/posts/", alice, map[string]string{"title": "Post", "text": "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post map[string]any
	f.decode(rec, &post)
	postID := post["id"].(string)

	for i := 0; i < 2; i++ {
		rec = f.do(http.MethodPost, "/api/v1/posts/"+postID+"/comments/", bob, map[string]string{"text": "hi"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	today := time.Now().UTC().Format("2006-01-02")
	rec = f.do(http.MethodGet, "/api/v1/statistics/comments-daily-breakdown?date_from="+today+"&date_to="+today, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []map[string]struct {
			CreatedComments int `json:"created_comments"`
			BlockedComments int `json:"blocked_comments"`
		} `json:"items"`
	}
	f.decode(rec, &body)
	require.Len(t, body.Items, 1)
	counters, ok := body.Items[0][today]
	require.True(t, ok)
	assert.Equal(t, 2, counters.CreatedComments)
	assert.Equal(t, 0, counters.BlockedComments)
}

func TestStatisticsInvalidRange(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")

	rec := f.do(http.MethodGet, "/api/v1/statistics/comments-daily-breakdown?date_from=bad&date_to=2024-03-16", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	f.decode(rec, &body)
	assert.Equal(t, messages.InvalidDateRange, body["detail"])
}

func TestInvalidPathID(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin("alice@example.com")

	rec := f.do(http.MethodGet, "/api/v1/posts/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	f.decode(rec, &body)
	assert.Equal(t, "healthy", body["status"])
}
