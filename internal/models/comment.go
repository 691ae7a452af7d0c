package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a post. PostAuthorAnswer is true only for
// system-generated replies, in which case AnsweredCommentID points at the
// comment being replied to.
type Comment struct {
	ID                uuid.UUID  `json:"id"`
	Text              string     `json:"text"`
	PostID            uuid.UUID  `json:"post_id"`
	AuthorID          uuid.UUID  `json:"author_id"`
	PostAuthorAnswer  bool       `json:"post_author_answer"`
	AnsweredCommentID *uuid.UUID `json:"answered_comment_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
