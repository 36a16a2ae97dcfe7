package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/menu"
)

// MenuHandler serves the menu item endpoints. Reads are public; mutations
// are admin only.
type MenuHandler struct {
	guard *auth.Guard
	items menu.ItemRepository
}

// NewMenuHandler creates a MenuHandler.
func NewMenuHandler(guard *auth.Guard, items menu.ItemRepository) *MenuHandler {
	return &MenuHandler{guard: guard, items: items}
}

// List returns all menu items, optionally filtered by the category query
// parameter.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []menu.Item
		err   error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		items, err = h.items.ListByCategory(r.Context(), category)
	} else {
		items, err = h.items.List(r.Context())
	}
	if err != nil {
		log.Printf("menu: list failed: %v", err)
		writeError(w, "Failed to list menu items", http.StatusInternalServerError)
		return
	}

	writeJSON(w, items, http.StatusOK)
}

// Get returns a single menu item by path ID.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/menu-items/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		log.Printf("menu: get %s failed: %v", id, err)
		writeError(w, "Failed to get menu item", http.StatusInternalServerError)
		return
	}
	if item == nil {
		writeError(w, "Menu item not found", http.StatusNotFound)
		return
	}

	writeJSON(w, item, http.StatusOK)
}

// Create stores a new menu item. Admin only.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	var item menu.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if item.Name == "" {
		writeError(w, "Missing name", http.StatusBadRequest)
		return
	}

	created, err := h.items.Create(r.Context(), item)
	if err != nil {
		log.Printf("menu: create failed: %v", err)
		writeError(w, "Failed to create menu item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusOK)
}

// Update overlays fields onto an existing item. The body carries the target
// in its "id" field alongside the changed fields. Admin only.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	if err := h.items.Update(r.Context(), id, body); err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, "Menu item not found", http.StatusNotFound)
			return
		}
		log.Printf("menu: update %s failed: %v", id, err)
		writeError(w, "Failed to update menu item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SuccessResponse{Success: true}, http.StatusOK)
}

// Delete removes the item named by the id query parameter. Admin only.
// Deleting a missing item still succeeds.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if err := h.items.Delete(r.Context(), id); err != nil {
		log.Printf("menu: delete %s failed: %v", id, err)
		writeError(w, "Failed to delete menu item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SuccessResponse{Success: true}, http.StatusOK)
}
