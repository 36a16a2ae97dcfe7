package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/user"
)

// MeHandler serves the authenticated user's own profile.
type MeHandler struct {
	guard *auth.Guard
	users user.Repository
}

// NewMeHandler creates a MeHandler.
func NewMeHandler(guard *auth.Guard, users user.Repository) *MeHandler {
	return &MeHandler{guard: guard, users: users}
}

// GetProfile returns the caller's profile, creating it from the verified
// claims on first login. New profiles never start with the admin flag.
func (h *MeHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := h.guard.VerifyRequest(r)
	if claims == nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.users.Get(r.Context(), claims.UID)
	if err != nil {
		log.Printf("me: failed to get profile %s: %v", claims.UID, err)
		writeError(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}

	if u == nil {
		u, err = h.users.Create(r.Context(), claims.UID, user.User{
			Email: claims.Email,
			Name:  claims.Name,
			Image: claims.Picture,
		})
		if err != nil {
			log.Printf("me: failed to create profile %s: %v", claims.UID, err)
			writeError(w, "Failed to create profile", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, u, http.StatusOK)
}

// profileFields are the fields a user may change on their own profile.
var profileFields = map[string]bool{
	"name":  true,
	"image": true,
}

// UpdateProfile overlays the allowed fields onto the caller's profile and
// returns the updated profile. Unknown fields and the admin flag are
// silently dropped.
func (h *MeHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, denial := h.guard.RequireAuth(r)
	if denial != nil {
		writeDenial(w, denial)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	fields := make(map[string]any)
	for key, value := range body {
		if profileFields[key] {
			fields[key] = value
		}
	}

	if err := h.users.Update(r.Context(), u.ID, fields); err != nil {
		log.Printf("me: failed to update profile %s: %v", u.ID, err)
		writeError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	updated, err := h.users.Get(r.Context(), u.ID)
	if err != nil || updated == nil {
		log.Printf("me: failed to reload profile %s: %v", u.ID, err)
		writeError(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}
	updated.ID = u.ID

	writeJSON(w, updated, http.StatusOK)
}
