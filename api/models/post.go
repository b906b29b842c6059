package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedPost is a Post joined with the author's display name.
type FeedPost struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	Caption     string         `json:"caption"`
	CreatedAt   time.Time      `json:"created_at"`
	DisplayName sql.NullString `json:"display_name"`
}
