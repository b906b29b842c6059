package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Allahviranloo/Ramble/api/auth"
	"github.com/Allahviranloo/Ramble/api/dtos"
	"github.com/Allahviranloo/Ramble/api/repositories"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Feed is capped so one request can't drag the whole posts table over.
const feedLimit = 50

// POST /api/posts
func PostCreatePostHandler(postRepo repositories.PostRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())

		var req dtos.CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if strings.TrimSpace(req.Caption) == "" {
			writeError(w, http.StatusBadRequest, "You can't post nothing")
			return
		}

		post, err := postRepo.CreatePost(userID, req.Caption)
		if err != nil {
			log.Error().Err(err).Msg("create post")
			writeError(w, http.StatusInternalServerError, "Server error when creating post")
			return
		}

		writeJSON(w, http.StatusCreated, dtos.CreatePostResponse{
			Message: "Post created successfully!",
			Post: dtos.Post{
				ID:        post.ID,
				OwnerID:   post.OwnerID,
				Caption:   post.Caption,
				CreatedAt: post.CreatedAt,
			},
		})
	}
}

// GET /api/posts/feed
func GetFeedHandler(postRepo repositories.PostRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())

		posts, err := postRepo.GetFeed(userID, feedLimit)
		if err != nil {
			log.Error().Err(err).Msg("fetch feed")
			writeError(w, http.StatusInternalServerError, "Server error when fetching feed")
			return
		}

		resp := dtos.GetFeedResponse{Posts: make([]dtos.FeedPost, 0, len(posts))}
		for _, p := range posts {
			post := dtos.FeedPost{
				ID:        p.ID,
				OwnerID:   p.OwnerID,
				Caption:   p.Caption,
				CreatedAt: p.CreatedAt,
			}
			if p.DisplayName.Valid {
				post.DisplayName = p.DisplayName.String
			}
			resp.Posts = append(resp.Posts, post)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// DELETE /api/posts/{postId}
func DeletePostHandler(postRepo repositories.PostRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())

		postID, err := uuid.Parse(chi.URLParam(r, "postId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid post ID")
			return
		}

		post, err := postRepo.GetPostByID(postID)
		if err != nil {
			log.Error().Err(err).Msg("fetch post")
			writeError(w, http.StatusInternalServerError, "Server error while deleting post")
			return
		}
		if post == nil {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}

		if post.OwnerID != userID {
			writeError(w, http.StatusForbidden, "You can only delete your own posts")
			return
		}

		if err := postRepo.DeletePost(postID); err != nil {
			log.Error().Err(err).Msg("delete post")
			writeError(w, http.StatusInternalServerError, "Server error while deleting post")
			return
		}

		writeJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Post deleted!"})
	}
}
