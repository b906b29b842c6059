package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Allahviranloo/Ramble/api/dtos"

	"github.com/rs/zerolog/log"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// writeError sends the uniform {"error": ...} failure body. Storage-level
// detail never reaches the client; callers log it before getting here.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dtos.ErrorResponse{Error: msg})
}
