package dtos

import "time"
import "github.com/google/uuid"

type CreatePostRequest struct {
	Caption string `json:"caption"`
}

type Post struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePostResponse struct {
	Message string `json:"message"`
	Post    Post   `json:"post"`
}

type FeedPost struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Caption     string    `json:"caption"`
	CreatedAt   time.Time `json:"created_at"`
	DisplayName string    `json:"display_name"`
}

type GetFeedResponse struct {
	Posts []FeedPost `json:"posts"`
}
