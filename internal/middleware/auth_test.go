package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bayou-blog/internal/auth"
	"bayou-blog/internal/database"
	"bayou-blog/internal/messages"
	"bayou-blog/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authFixture(t *testing.T) (*auth.TokenService, *database.MemStore, *models.User) {
	t.Helper()
	tokens := auth.NewTokenService("test-secret", 15*time.Minute)
	store := database.NewMemStore()
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return tokens, store, user
}

func protectedProbe(tokens *auth.TokenService, store database.Store, seen **models.User) http.Handler {
	return Authenticate(tokens, store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := UserFromContext(r.Context()); ok {
			*seen = user
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestAuthenticateValidToken(t *testing.T) {
	tokens, store, user := authFixture(t)
	var seen *models.User
	handler := protectedProbe(tokens, store, &seen)

	token, err := tokens.Issue(user.Email)
	require.NoError(t, err)

	rec := doRequest(handler, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	tokens, store, _ := authFixture(t)
	var seen *models.User
	handler := protectedProbe(tokens, store, &seen)

	rec := doRequest(handler, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, messages.NotAuthenticated, detailOf(t, rec))
	assert.Nil(t, seen)
}

func TestAuthenticateWrongScheme(t *testing.T) {
	tokens, store, user := authFixture(t)
	var seen *models.User
	handler := protectedProbe(tokens, store, &seen)

	token, err := tokens.Issue(user.Email)
	require.NoError(t, err)

	rec := doRequest(handler, "Basic "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, messages.InvalidAuthScheme, detailOf(t, rec))
}

func TestAuthenticateBadToken(t *testing.T) {
	tokens, store, _ := authFixture(t)
	var seen *models.User
	handler := protectedProbe(tokens, store, &seen)

	rec := doRequest(handler, "Bearer not-a-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, messages.TokenDecodeError, detailOf(t, rec))
}

func TestAuthenticateExpiredToken(t *testing.T) {
	_, store, user := authFixture(t)
	issued := time.Now().Add(-time.Hour)
	issuer := auth.NewTokenService("test-secret", 15*time.Minute).
		WithClock(func() time.Time { return issued })

	token, err := issuer.Issue(user.Email)
	require.NoError(t, err)

	verifier := auth.NewTokenService("test-secret", 15*time.Minute)
	var seen *models.User
	handler := protectedProbe(verifier, store, &seen)

	rec := doRequest(handler, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, messages.TokenDecodeError, detailOf(t, rec))
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	tokens, store, _ := authFixture(t)
	var seen *models.User
	handler := protectedProbe(tokens, store, &seen)

	token, err := tokens.Issue("ghost@example.com")
	require.NoError(t, err)

	rec := doRequest(handler, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, messages.CredentialsIncorrect, detailOf(t, rec))
}
