package handlers

import (
	"net/http"

	"github.com/Allahviranloo/Ramble/api/auth"
	"github.com/Allahviranloo/Ramble/api/dtos"
	"github.com/Allahviranloo/Ramble/api/repositories"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// POST /api/follow/{userId}
func PostFollowHandler(userRepo repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())

		targetID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user ID")
			return
		}

		if userID == targetID {
			writeError(w, http.StatusBadRequest, "You can only follow other people")
			return
		}

		created, err := userRepo.CreateFollow(userID, targetID)
		if err != nil {
			log.Error().Err(err).Msg("create follow")
			writeError(w, http.StatusInternalServerError, "Server error while following user")
			return
		}

		if !created {
			writeError(w, http.StatusConflict, "Already following this user")
			return
		}

		writeJSON(w, http.StatusCreated, dtos.MessageResponse{Message: "You're following this user"})
	}
}

// DELETE /api/follow/{userId}
func DeleteFollowHandler(userRepo repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserIDFromContext(r.Context())

		targetID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user ID")
			return
		}

		deleted, err := userRepo.DeleteFollow(userID, targetID)
		if err != nil {
			log.Error().Err(err).Msg("delete follow")
			writeError(w, http.StatusInternalServerError, "Server error while unfollowing user")
			return
		}

		if !deleted {
			writeError(w, http.StatusNotFound, "Following relationship not found")
			return
		}

		writeJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Unfollowed user"})
	}
}
