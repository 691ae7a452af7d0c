// internal/service/user.go
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"bayou-blog/internal/auth"
	"bayou-blog/internal/database"
	"bayou-blog/internal/messages"
	"bayou-blog/internal/models"
	"bayou-blog/internal/utils"

	"github.com/google/uuid"
)

// UserService handles registration, authentication and auto-response
// settings.
type UserService struct {
	store  database.Store
	logger *slog.Logger
}

func NewUserService(store database.Store, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// Register hashes the password and inserts the user. Duplicate emails are
// reported by the store's unique index, not a pre-check.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return nil, utils.NewAppError(utils.ErrInvalidInput, messages.EmptyPasswordField, nil)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:                              uuid.New(),
		Email:                           email,
		HashedPassword:                  hashed,
		AutomaticResponseEnabled:        false,
		AutomaticResponseDelayInMinutes: 1,
		CreatedAt:                       time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate returns the user for valid credentials. Unknown email and
// wrong password produce the same failure so callers cannot tell them apart.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrUserNotFound) {
			return nil, utils.NewAppError(utils.ErrInvalidCredentials, messages.IncorrectLoginInput, nil)
		}
		return nil, err
	}

	if !auth.CheckPassword(password, user.HashedPassword) {
		return nil, utils.NewAppError(utils.ErrInvalidCredentials, messages.IncorrectLoginInput, nil)
	}
	return user, nil
}

// Settings returns the target user's settings; only the user themselves may
// read them.
func (s *UserService) Settings(ctx context.Context, targetID uuid.UUID, caller *models.User) (*models.User, error) {
	if targetID != caller.ID {
		return nil, utils.NewAppError(utils.ErrNotAllowed, messages.SettingsNotAllowed, nil)
	}
	return s.store.GetUser(ctx, targetID)
}

// UpdateSettings applies the fields present in the partial payload. Only the
// user themselves may change their settings.
func (s *UserService) UpdateSettings(ctx context.Context, targetID uuid.UUID, caller *models.User, enabled *bool, delayMinutes *int) (*models.User, error) {
	if targetID != caller.ID {
		return nil, utils.NewAppError(utils.ErrNotAllowed, messages.SettingsNotAllowed, nil)
	}
	return s.store.UpdateUserSettings(ctx, targetID, enabled, delayMinutes)
}
