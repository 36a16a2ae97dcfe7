package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forno-app/forno/internal/store"
)

func TestToData_OmitsEmptyOptionalFields(t *testing.T) {
	u := User{
		Email:     "a@x.com",
		Admin:     false,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	data := toData(u)

	if _, ok := data["name"]; ok {
		t.Error("empty name should be omitted")
	}
	if _, ok := data["image"]; ok {
		t.Error("empty image should be omitted")
	}
	if data["email"] != "a@x.com" {
		t.Errorf("email = %v", data["email"])
	}
	if data["admin"] != false {
		t.Errorf("admin = %v", data["admin"])
	}
}

func TestDataRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	in := User{
		ID:        "u1",
		Email:     "a@x.com",
		Name:      "Ada",
		Image:     "https://example.com/ada.png",
		Admin:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	out := fromData("u1", toData(in))

	if out != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestFromData_ToleratesMissingAndWrongTypes(t *testing.T) {
	u := fromData("u2", map[string]any{
		"email": 42,   // wrong type
		"admin": "no", // wrong type
	})

	if u.ID != "u2" {
		t.Errorf("ID = %q", u.ID)
	}
	if u.Email != "" || u.Admin {
		t.Errorf("wrong-typed fields should be zero: %+v", u)
	}
	if !u.CreatedAt.IsZero() {
		t.Errorf("missing createdAt should stay zero, got %v", u.CreatedAt)
	}
}

func TestRestrictedClient_DeniesAdminOperations(t *testing.T) {
	repo := NewFirestoreRepository(store.Wrap(nil, store.AccessRestricted))
	ctx := context.Background()

	if _, err := repo.List(ctx); !errors.Is(err, store.ErrPermissionDenied) {
		t.Errorf("List: expected ErrPermissionDenied, got %v", err)
	}
	if err := repo.Delete(ctx, "u1"); !errors.Is(err, store.ErrPermissionDenied) {
		t.Errorf("Delete: expected ErrPermissionDenied, got %v", err)
	}
}
