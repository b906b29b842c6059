package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	DisplayName sql.NullString `json:"display_name"`
	CreatedAt   time.Time      `json:"created_at"`
}

// UserProfile is a User joined with its profile row plus follow counts.
type UserProfile struct {
	ID                uuid.UUID      `json:"id"`
	Email             string         `json:"email"`
	CreatedAt         time.Time      `json:"created_at"`
	DisplayName       sql.NullString `json:"display_name"`
	Bio               sql.NullString `json:"bio"`
	ProfilePictureURL sql.NullString `json:"profile_picture_url"`
	FollowersCount    int            `json:"followers_count"`
	FollowingCount    int            `json:"following_count"`
}

type Profile struct {
	UserID            uuid.UUID      `json:"user_id"`
	DisplayName       string         `json:"display_name"`
	Bio               sql.NullString `json:"bio"`
	ProfilePictureURL sql.NullString `json:"profile_picture_url"`
}

type SearchedUser struct {
	ID                uuid.UUID      `json:"id"`
	DisplayName       sql.NullString `json:"display_name"`
	ProfilePictureURL sql.NullString `json:"profile_picture_url"`
	IsFollowing       bool           `json:"is_following"`
}
