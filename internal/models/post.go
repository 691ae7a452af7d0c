package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a user-owned article. A user may not own two posts with the same
// title (exact, case-sensitive match).
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
