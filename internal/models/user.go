package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Email uniqueness is enforced by the store's
// unique index, not by application pre-checks.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`

	// Auto-response settings: when enabled, comments from other users on this
	// user's posts trigger a deferred AI reply after the configured delay.
	AutomaticResponseEnabled        bool `json:"automatic_response_enabled"`
	AutomaticResponseDelayInMinutes int  `json:"automatic_response_delay_in_minutes"`

	CreatedAt time.Time `json:"created_at"`
}
