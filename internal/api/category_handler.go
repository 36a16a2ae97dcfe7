package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/menu"
)

// CategoryHandler serves the menu category endpoints. Reads are public;
// mutations are admin only.
type CategoryHandler struct {
	guard      *auth.Guard
	categories menu.CategoryRepository
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(guard *auth.Guard, categories menu.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{guard: guard, categories: categories}
}

// List returns all categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		log.Printf("categories: list failed: %v", err)
		writeError(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}

	writeJSON(w, categories, http.StatusOK)
}

// Create stores a new category. Admin only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		writeError(w, "Missing name", http.StatusBadRequest)
		return
	}

	created, err := h.categories.Create(r.Context(), body.Name)
	if err != nil {
		log.Printf("categories: create failed: %v", err)
		writeError(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusOK)
}

// Update renames an existing category. The body carries the target in its
// "id" field. Admin only.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	id, _ := body["id"].(string)
	if id == "" {
		writeError(w, "Missing id field", http.StatusBadRequest)
		return
	}

	if err := h.categories.Update(r.Context(), id, body); err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, "Category not found", http.StatusNotFound)
			return
		}
		log.Printf("categories: update %s failed: %v", id, err)
		writeError(w, "Failed to update category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SuccessResponse{Success: true}, http.StatusOK)
}

// Delete removes the category named by the id query parameter. Admin only.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		log.Printf("categories: delete %s failed: %v", id, err)
		writeError(w, "Failed to delete category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SuccessResponse{Success: true}, http.StatusOK)
}
