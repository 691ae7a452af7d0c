// internal/database/user_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"bayou-blog/internal/messages"
	"bayou-blog/internal/models"
	"bayou-blog/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID                              string    `bson:"_id"`
	Email                           string    `bson:"email"`
	HashedPassword                  string    `bson:"password"`
	AutomaticResponseEnabled        bool      `bson:"automatic_response_enabled"`
	AutomaticResponseDelayInMinutes int       `bson:"automatic_response_delay_in_minutes"`
	CreatedAt                       time.Time `bson:"created_at"`
}

func userToDocument(user *models.User) *UserDocument {
	return &UserDocument{
		ID:                              user.ID.String(),
		Email:                           user.Email,
		HashedPassword:                  user.HashedPassword,
		AutomaticResponseEnabled:        user.AutomaticResponseEnabled,
		AutomaticResponseDelayInMinutes: user.AutomaticResponseDelayInMinutes,
		CreatedAt:                       user.CreatedAt,
	}
}

func userFromDocument(doc *UserDocument) (*models.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}
	return &models.User{
		ID:                              id,
		Email:                           doc.Email,
		HashedPassword:                  doc.HashedPassword,
		AutomaticResponseEnabled:        doc.AutomaticResponseEnabled,
		AutomaticResponseDelayInMinutes: doc.AutomaticResponseDelayInMinutes,
		CreatedAt:                       doc.CreatedAt,
	}, nil
}

// CreateUser inserts a new user. A duplicate email is reported by the unique
// index, which closes the race a find-then-insert check would leave open.
func (m *MongoDB) CreateUser(ctx context.Context, user *models.User) error {
	_, err := m.Users.InsertOne(ctx, userToDocument(user))
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrUserAlreadyExists, messages.UserAlreadyExists, err)
	}
	return err
}

// GetUser retrieves a user by ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument
	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, messages.UserNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return userFromDocument(&doc)
}

// GetUserByEmail retrieves a user by email address
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument
	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, messages.UserNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return userFromDocument(&doc)
}

// UpdateUserSettings applies the auto-response settings that are present and
// returns the updated user. Nil fields are left untouched.
func (m *MongoDB) UpdateUserSettings(ctx context.Context, id uuid.UUID, enabled *bool, delayMinutes *int) (*models.User, error) {
	set := bson.M{}
	if enabled != nil {
		set["automatic_response_enabled"] = *enabled
	}
	if delayMinutes != nil {
		set["automatic_response_delay_in_minutes"] = *delayMinutes
	}

	if len(set) > 0 {
		result, err := m.Users.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": set})
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, utils.NewAppError(utils.ErrUserNotFound, messages.UserNotFound, nil)
		}
	}

	return m.GetUser(ctx, id)
}
