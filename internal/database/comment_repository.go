// internal/database/comment_repository.go
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

// CommentDocument represents the MongoDB schema for a comment.
type CommentDocument struct {
	ID                string    `bson:"_id"`
	Text              string    `bson:"text"`
	PostID            string    `bson:"post_id"`
	AuthorID          string    `bson:"author_id"`
	PostAuthorAnswer  bool      `bson:"post_author_answer"`
	AnsweredCommentID *string   `bson:"answered_comment_id,omitempty"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

func commentToDocument(comment *models.Comment) *CommentDocument {
	doc := &CommentDocument{
		ID:               comment.ID.String(),
		Text:             comment.Text,
		PostID:           comment.PostID.String(),
		AuthorID:         comment.AuthorID.String(),
		PostAuthorAnswer: comment.PostAuthorAnswer,
		CreatedAt:        comment.CreatedAt,
		UpdatedAt:        comment.UpdatedAt,
	}
	if comment.AnsweredCommentID != nil {
		answered := comment.AnsweredCommentID.String()
		doc.AnsweredCommentID = &answered
	}
	return doc
}

func commentFromDocument(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID in database: %v", err)
	}
	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment post ID in database: %v", err)
	}
	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment author ID in database: %v", err)
	}

	comment := &models.Comment{
		ID:               id,
		Text:             doc.Text,
		PostID:           postID,
		AuthorID:         authorID,
		PostAuthorAnswer: doc.PostAuthorAnswer,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
	if doc.AnsweredCommentID != nil {
		answered, err := uuid.Parse(*doc.AnsweredCommentID)
		if err != nil {
			return nil, fmt.Errorf("invalid answered comment ID in database: %v", err)
		}
		comment.AnsweredCommentID = &answered
	}
	return comment, nil
}

// CreateComment inserts a new comment.
func (m *MongoDB) CreateComment(ctx context.Context, comment *models.Comment) error {
	_, err := m.Comments.InsertOne(ctx, commentToDocument(comment))
	return err
}

// SaveComment updates a comment, creating it if missing.
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": comment.ID.String()}
	update := bson.M{"$set": commentToDocument(comment)}

	_, err := m.Comments.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetComment retrieves a comment by its ID.
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument
	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, messages.CommentNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return commentFromDocument(&doc)
}

// DeleteComment removes a comment and reports whether it existed.
func (m *MongoDB) DeleteComment(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := m.Comments.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// DeleteCommentsForPost removes every comment referencing the post. Used by
// the cascade when a post is deleted.
func (m *MongoDB) DeleteCommentsForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	result, err := m.Comments.DeleteMany(ctx, bson.M{"post_id": postID.String()})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// ListComments returns one page of the post's comments in insertion order.
func (m *MongoDB) ListComments(ctx context.Context, postID uuid.UUID, page, pageSize int) (*Page[models.Comment], error) {
	match := bson.M{"post_id": postID.String()}
	docs, err := paginate[CommentDocument](ctx, m.Comments, match, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := &Page[models.Comment]{
		Items:           make([]models.Comment, 0, len(docs.Items)),
		TotalItemsCount: docs.TotalItemsCount,
		Page:            docs.Page,
		PageSize:        docs.PageSize,
	}
	for i := range docs.Items {
		comment, err := commentFromDocument(&docs.Items[i])
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, *comment)
	}
	return result, nil
}
