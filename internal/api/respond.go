package api

import (
	"encoding/json"
	"net/http"

	"github.com/forno-app/forno/internal/auth"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the JSON body of mutations that return no entity.
type SuccessResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, data any, status int) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already written, can only give up.
		return
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, ErrorResponse{Error: message}, status)
}

// writeDenial writes a guard denial as-is. Denials carry a stable message
// and never leak provider or store errors.
func writeDenial(w http.ResponseWriter, d *auth.Denial) {
	writeJSON(w, d, d.Status)
}
