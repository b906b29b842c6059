package dtos

import (
	"time"

	"github.com/google/uuid"
)

type ProfileBody struct {
	DisplayName       string `json:"display_name"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	FollowersCount    int    `json:"followers_count"`
	FollowingCount    int    `json:"following_count"`
}

type ProfilePost struct {
	ID        uuid.UUID `json:"id"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

type UserProfileBody struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	CreatedAt time.Time     `json:"created_at"`
	Profile   ProfileBody   `json:"profile"`
	Posts     []ProfilePost `json:"posts"`
}

type GetProfileResponse struct {
	Message string          `json:"message"`
	User    UserProfileBody `json:"user"`
}

type CurrentUserBody struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Profile   struct {
		DisplayName string `json:"display_name"`
	} `json:"profile"`
}

type GetCurrentUserResponse struct {
	Message string          `json:"message"`
	User    CurrentUserBody `json:"user"`
}

type EditProfileRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

type EditProfileResponse struct {
	Message string      `json:"message"`
	Profile ProfileBody `json:"profile"`
}

type SearchedUser struct {
	ID                uuid.UUID `json:"id"`
	DisplayName       string    `json:"display_name"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	IsFollowing       bool      `json:"is_following"`
}

type SearchUsersResponse struct {
	Users []SearchedUser `json:"users"`
}
