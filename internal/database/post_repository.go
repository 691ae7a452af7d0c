// internal/database/post_repository.go
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostDocument represents the MongoDB schema for a post.
type PostDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Text      string    `bson:"text"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func postToDocument(post *models.Post) *PostDocument {
	return &PostDocument{
		ID:        post.ID.String(),
		Title:     post.Title,
		Text:      post.Text,
		UserID:    post.UserID.String(),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func postFromDocument(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID in database: %v", err)
	}
	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid post owner ID in database: %v", err)
	}
	return &models.Post{
		ID:        id,
		Title:     doc.Title,
		Text:      doc.Text,
		UserID:    userID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// CreatePost inserts a new post.
func (m *MongoDB) CreatePost(ctx context.Context, post *models.Post) error {
	_, err := m.Posts.InsertOne(ctx, postToDocument(post))
	return err
}

// SavePost updates a post, creating it if missing.
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": post.ID.String()}
	update := bson.M{"$set": postToDocument(post)}

	_, err := m.Posts.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetPost retrieves a post by its ID.
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument
	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrPostNotFound, messages.PostNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return postFromDocument(&doc)
}

// DeletePost removes a post and reports whether it existed.
func (m *MongoDB) DeletePost(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := m.Posts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// UserHasPostTitled reports whether the user already owns a post with exactly
// this title. Count-then-insert is not atomic; see DESIGN.md.
func (m *MongoDB) UserHasPostTitled(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	count, err := m.Posts.CountDocuments(ctx, bson.M{
		"user_id": userID.String(),
		"title":   title,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPosts returns one page of all posts in insertion order.
func (m *MongoDB) ListPosts(ctx context.Context, page, pageSize int) (*Page[models.Post], error) {
	docs, err := paginate[PostDocument](ctx, m.Posts, nil, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := &Page[models.Post]{
		Items:           make([]models.Post, 0, len(docs.Items)),
		TotalItemsCount: docs.TotalItemsCount,
		Page:            docs.Page,
		PageSize:        docs.PageSize,
	}
	for i := range docs.Items {
		post, err := postFromDocument(&docs.Items[i])
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, *post)
	}
	return result, nil
}
