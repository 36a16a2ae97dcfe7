package menu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forno-app/forno/internal/store"
)

func TestItemDataRoundTrip(t *testing.T) {
	now := time.Date(2025, 5, 20, 18, 0, 0, 0, time.UTC)
	in := Item{
		ID:          "m1",
		Name:        "Quattro Formaggi",
		Description: "Four cheeses",
		Image:       "https://example.com/qf.png",
		Category:    "cat-pizza",
		BasePrice:   12.5,
		Sizes: []Option{
			{Name: "Small", Price: 0},
			{Name: "Large", Price: 4},
		},
		Extras: []Option{
			{Name: "Gorgonzola", Price: 1.5},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	data := itemToData(in)
	// Firestore hands slices back as []any.
	data["sizes"] = toAnySlice(data["sizes"].([]map[string]any))
	data["extraIngredientPrices"] = toAnySlice(data["extraIngredientPrices"].([]map[string]any))

	out := itemFromData("m1", data)

	if out.Name != in.Name || out.Category != in.Category || out.BasePrice != in.BasePrice {
		t.Errorf("scalar fields mismatch: %+v", out)
	}
	if len(out.Sizes) != 2 || out.Sizes[1] != (Option{Name: "Large", Price: 4}) {
		t.Errorf("sizes mismatch: %+v", out.Sizes)
	}
	if len(out.Extras) != 1 || out.Extras[0] != (Option{Name: "Gorgonzola", Price: 1.5}) {
		t.Errorf("extras mismatch: %+v", out.Extras)
	}
	if !out.CreatedAt.Equal(now) || !out.UpdatedAt.Equal(now) {
		t.Errorf("timestamps mismatch: %+v", out)
	}
}

func toAnySlice(maps []map[string]any) []any {
	result := make([]any, len(maps))
	for i, m := range maps {
		result[i] = m
	}
	return result
}

func TestItemToData_OmitsEmptyOptionalFields(t *testing.T) {
	data := itemToData(Item{Name: "Bruschetta", Category: "cat-starters", BasePrice: 6})

	for _, key := range []string{"description", "image", "sizes", "extraIngredientPrices"} {
		if _, ok := data[key]; ok {
			t.Errorf("empty %s should be omitted", key)
		}
	}
}

func TestOptionsFromData_SkipsMalformedEntries(t *testing.T) {
	options := optionsFromData([]any{
		map[string]any{"name": "Small", "price": 0.0},
		"garbage",
		map[string]any{"name": "Large", "price": 4.0},
	})

	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if options[1].Name != "Large" {
		t.Errorf("options[1] = %+v", options[1])
	}
}

func TestCategoryFromData(t *testing.T) {
	now := time.Now().UTC()
	c := categoryFromData("c1", map[string]any{
		"name":      "Pizzas",
		"createdAt": now,
		"updatedAt": now,
	})

	if c.ID != "c1" || c.Name != "Pizzas" {
		t.Errorf("category = %+v", c)
	}
	if !c.CreatedAt.Equal(now) {
		t.Errorf("createdAt = %v", c.CreatedAt)
	}
}

func TestRestrictedClient_DeniesAdminOperations(t *testing.T) {
	ctx := context.Background()
	restricted := store.Wrap(nil, store.AccessRestricted)

	items := NewItemFirestoreRepository(restricted)
	if _, err := items.List(ctx); !errors.Is(err, store.ErrPermissionDenied) {
		t.Errorf("items.List: expected ErrPermissionDenied, got %v", err)
	}
	if err := items.Delete(ctx, "m1"); !errors.Is(err, store.ErrPermissionDenied) {
		t.Errorf("items.Delete: expected ErrPermissionDenied, got %v", err)
	}

	categories := NewCategoryFirestoreRepository(restricted)
	if _, err := categories.Create(ctx, "Pizzas"); !errors.Is(err, store.ErrPermissionDenied) {
		t.Errorf("categories.Create: expected ErrPermissionDenied, got %v", err)
	}
	if err := categories.Update(ctx, "c1", map[string]any{"name": "Pies"}); !errors.Is(err, store.ErrPermissionDenied) {
		t.Errorf("categories.Update: expected ErrPermissionDenied, got %v", err)
	}
	if err := categories.Delete(ctx, "c1"); !errors.Is(err, store.ErrPermissionDenied) {
		t.Errorf("categories.Delete: expected ErrPermissionDenied, got %v", err)
	}
}
