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

// Profile pages show the 20 most recent posts.
const profilePostLimit = 20

// GET /api/user
func GetCurrentUserHandler(userRepo repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())

		user, err := userRepo.GetUserByID(userID)
		if err != nil {
			log.Error().Err(err).Msg("fetch current user")
			writeError(w, http.StatusInternalServerError, "Server error fetching user data.")
			return
		}
		if user == nil {
			writeError(w, http.StatusNotFound, "User data not found.")
			return
		}

		resp := dtos.GetCurrentUserResponse{Message: "Successfully fetched user data."}
		resp.User.ID = user.ID
		resp.User.Email = user.Email
		resp.User.CreatedAt = user.CreatedAt
		if user.DisplayName.Valid {
			resp.User.Profile.DisplayName = user.DisplayName.String
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// GET /api/profile/{userId}
//
// Any authenticated caller can view any profile.
func GetProfileHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user ID")
			return
		}

		profile, err := userRepo.GetProfileByID(targetID)
		if err != nil {
			log.Error().Err(err).Msg("fetch profile")
			writeError(w, http.StatusInternalServerError, "Server error fetching profile data.")
			return
		}
		if profile == nil {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}

		posts, err := postRepo.GetRecentByOwner(targetID, profilePostLimit)
		if err != nil {
			log.Error().Err(err).Msg("fetch profile posts")
			writeError(w, http.StatusInternalServerError, "Server error fetching profile data.")
			return
		}

		resp := dtos.GetProfileResponse{Message: "Successfully fetched user profile."}
		resp.User.ID = profile.ID
		resp.User.Email = profile.Email
		resp.User.CreatedAt = profile.CreatedAt
		resp.User.Profile.FollowersCount = profile.FollowersCount
		resp.User.Profile.FollowingCount = profile.FollowingCount
		if profile.DisplayName.Valid {
			resp.User.Profile.DisplayName = profile.DisplayName.String
		}
		if profile.Bio.Valid {
			resp.User.Profile.Bio = profile.Bio.String
		}
		if profile.ProfilePictureURL.Valid {
			resp.User.Profile.ProfilePictureURL = profile.ProfilePictureURL.String
		}

		resp.User.Posts = make([]dtos.ProfilePost, 0, len(posts))
		for _, p := range posts {
			resp.User.Posts = append(resp.User.Posts, dtos.ProfilePost{
				ID:        p.ID,
				Caption:   p.Caption,
				CreatedAt: p.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// PUT /api/editprofile
//
// Identity comes from the verified token, never the body, so a caller can
// only ever edit their own profile.
func PutEditProfileHandler(userRepo repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())

		var req dtos.EditProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.DisplayName = strings.TrimSpace(req.DisplayName)
		if req.DisplayName == "" {
			writeError(w, http.StatusBadRequest, "Display name is required")
			return
		}

		profile, err := userRepo.UpdateProfile(userID, req.DisplayName, req.Bio)
		if err != nil {
			log.Error().Err(err).Msg("update profile")
			writeError(w, http.StatusInternalServerError, "Server error updating profile")
			return
		}
		if profile == nil {
			writeError(w, http.StatusNotFound, "User data not found.")
			return
		}

		resp := dtos.EditProfileResponse{Message: "Profile successfully updated!"}
		resp.Profile.DisplayName = profile.DisplayName
		if profile.Bio.Valid {
			resp.Profile.Bio = profile.Bio.String
		}
		if profile.ProfilePictureURL.Valid {
			resp.Profile.ProfilePictureURL = profile.ProfilePictureURL.String
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// GET /api/search/users?query=
func GetSearchUsersHandler(userRepo repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())

		query := strings.TrimSpace(r.URL.Query().Get("query"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "You need to search for something!")
			return
		}

		matches, err := userRepo.SearchUsers(userID, query)
		if err != nil {
			log.Error().Err(err).Msg("search users")
			writeError(w, http.StatusInternalServerError, "Server error during search")
			return
		}

		resp := dtos.SearchUsersResponse{Users: make([]dtos.SearchedUser, 0, len(matches))}
		for _, m := range matches {
			user := dtos.SearchedUser{
				ID:          m.ID,
				IsFollowing: m.IsFollowing,
			}
			if m.DisplayName.Valid {
				user.DisplayName = m.DisplayName.String
			}
			if m.ProfilePictureURL.Valid {
				user.ProfilePictureURL = m.ProfilePictureURL.String
			}
			resp.Users = append(resp.Users, user)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
