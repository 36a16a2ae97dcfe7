package api

import (
	"log"
	"net/http"

	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/user"
)

// UserHandler serves the administrative user endpoints.
type UserHandler struct {
	guard *auth.Guard
	users user.Repository
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(guard *auth.Guard, users user.Repository) *UserHandler {
	return &UserHandler{guard: guard, users: users}
}

// List returns every stored profile. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		log.Printf("users: list failed: %v", err)
		writeError(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	writeJSON(w, users, http.StatusOK)
}

// Delete removes the profile named by the id query parameter. Admin only.
// Deleting a missing profile still succeeds.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	uid := r.URL.Query().Get("id")
	if uid == "" {
		writeError(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if err := h.users.Delete(r.Context(), uid); err != nil {
		log.Printf("users: delete %s failed: %v", uid, err)
		writeError(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SuccessResponse{Success: true}, http.StatusOK)
}
