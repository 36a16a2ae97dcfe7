package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/notify"
	"github.com/forno-app/forno/internal/order"
)

// OrderHandler serves the order endpoints. Every endpoint requires at least
// an authenticated profile.
type OrderHandler struct {
	guard    *auth.Guard
	orders   order.Repository
	notifier *notify.Notifier
	hub      *Hub
}

// NewOrderHandler creates an OrderHandler. notifier and hub may be nil.
func NewOrderHandler(guard *auth.Guard, orders order.Repository, notifier *notify.Notifier, hub *Hub) *OrderHandler {
	return &OrderHandler{guard: guard, orders: orders, notifier: notifier, hub: hub}
}

// Create places a new order for the caller. The order's email is always the
// caller's profile email; a client cannot place orders under another
// identity.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, denial := h.guard.RequireAuth(r)
	if denial != nil {
		writeDenial(w, denial)
		return
	}

	var o order.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(o.Items) == 0 {
		writeError(w, "Order has no items", http.StatusBadRequest)
		return
	}

	o.UserEmail = u.Email

	created, err := h.orders.Create(r.Context(), o)
	if err != nil {
		log.Printf("orders: create failed: %v", err)
		writeError(w, "Failed to create order", http.StatusInternalServerError)
		return
	}

	h.notifier.OrderCreated(*created)
	if h.hub != nil {
		h.hub.Broadcast(OrderEvent{Type: "order.created", Order: *created})
	}

	writeJSON(w, created, http.StatusOK)
}

// List returns the caller's own orders, or every order for an admin.
// Both listings are newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	u, denial := h.guard.RequireAuth(r)
	if denial != nil {
		writeDenial(w, denial)
		return
	}

	var (
		orders []order.Order
		err    error
	)
	if u.Admin {
		orders, err = h.orders.List(r.Context())
	} else {
		orders, err = h.orders.ListByUserEmail(r.Context(), u.Email)
	}
	if err != nil {
		log.Printf("orders: list failed: %v", err)
		writeError(w, "Failed to list orders", http.StatusInternalServerError)
		return
	}

	writeJSON(w, orders, http.StatusOK)
}

// Get returns a single order by path ID. Non-admins may only read their own
// orders.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, denial := h.guard.RequireAuth(r)
	if denial != nil {
		writeDenial(w, denial)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		log.Printf("orders: get %s failed: %v", id, err)
		writeError(w, "Failed to get order", http.StatusInternalServerError)
		return
	}
	if o == nil {
		writeError(w, "Order not found", http.StatusNotFound)
		return
	}
	if !u.Admin && o.UserEmail != u.Email {
		writeError(w, "Forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, o, http.StatusOK)
}

// Update overlays fields onto an existing order, typically flipping paid.
// Admin only.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.orders.Update(r.Context(), id, body); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Printf("orders: update %s failed: %v", id, err)
		writeError(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	if updated, err := h.orders.Get(r.Context(), id); err == nil && updated != nil {
		h.notifier.OrderUpdated(*updated)
		if h.hub != nil {
			h.hub.Broadcast(OrderEvent{Type: "order.updated", Order: *updated})
		}
	}

	writeJSON(w, SuccessResponse{Success: true}, http.StatusOK)
}
