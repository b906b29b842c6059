package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"encoding/json"

	"golang.org/x/crypto/bcrypt"

	"github.com/Allahviranloo/Ramble/api/auth"
	"github.com/Allahviranloo/Ramble/api/dtos"
	"github.com/Allahviranloo/Ramble/api/repositories"

	"github.com/rs/zerolog/log"
)

// POST /api/register
func PostRegisterHandler(userRepo repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Please fill out all fields.")
			return
		}

		if req.Email == "" || req.Password == "" || req.DisplayName == "" {
			writeError(w, http.StatusBadRequest, "Please fill out all fields.")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Msg("hash password")
			writeError(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		id, err := userRepo.CreateUser(req.Email, string(hash), req.DisplayName)
		if err != nil {
			if errors.Is(err, repositories.ErrEmailTaken) {
				writeError(w, http.StatusConflict, "This email is already linked to an account")
				return
			}
			log.Error().Err(err).Msg("create user")
			writeError(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		// Log the new account straight in.
		token, err := auth.GenerateToken(id)
		if err != nil {
			log.Error().Err(err).Msg("sign token")
			writeError(w, http.StatusInternalServerError, "Server error during registration")
			return
		}
		auth.SetTokenCookie(w, token)

		writeJSON(w, http.StatusCreated, dtos.RegisterResponse{
			Message: "Registered Successfully!",
			UserID:  id,
		})
	}
}

// POST /api/login
func PostLoginHandler(userRepo repositories.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Please provide both email and password")
			return
		}

		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Please provide both email and password")
			return
		}

		// Same generic message for an unknown email and a wrong password, so
		// a caller can't probe which emails are registered.
		id, hash, err := userRepo.GetCredentialsByEmail(req.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			log.Error().Err(err).Msg("fetch credentials")
			writeError(w, http.StatusInternalServerError, "Server error during login")
			return
		}

		if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := auth.GenerateToken(id)
		if err != nil {
			log.Error().Err(err).Msg("sign token")
			writeError(w, http.StatusInternalServerError, "Server error during login")
			return
		}
		auth.SetTokenCookie(w, token)

		writeJSON(w, http.StatusOK, dtos.LoginResponse{
			Message: "Login successful!",
			UserID:  id,
			Token:   token,
		})
	}
}

// POST /api/logout
//
// Clears the cookie unconditionally. A token captured before logout stays
// valid until it expires; tokens are short-lived so there is no server-side
// revocation list.
func PostLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.ClearTokenCookie(w)
		writeJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Logout successful."})
	}
}
