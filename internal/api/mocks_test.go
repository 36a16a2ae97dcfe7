package api

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/menu"
	"github.com/forno-app/forno/internal/order"
	"github.com/forno-app/forno/internal/user"
)

type mockVerifier struct {
	tokens map[string]*auth.Claims
}

func (m *mockVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Claims, error) {
	if claims, ok := m.tokens[idToken]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

type mockUserRepo struct {
	users map[string]*user.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*user.User)}
}

func (m *mockUserRepo) Create(_ context.Context, uid string, u user.User) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	now := time.Now().UTC()
	u.ID = uid
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[uid] = &u
	copy := u
	return &copy, nil
}

func (m *mockUserRepo) Get(_ context.Context, uid string) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[uid]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []user.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, uid string, fields map[string]any) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[uid]
	if !ok {
		return user.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["image"].(string); ok {
		u.Image = v
	}
	if v, ok := fields["admin"].(bool); ok {
		u.Admin = v
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, uid string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.users, uid)
	return nil
}

type mockItemRepo struct {
	items map[string]*menu.Item
	next  int
	err   error
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[string]*menu.Item)}
}

func (m *mockItemRepo) Create(_ context.Context, item menu.Item) (*menu.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.next++
	item.ID = "item-" + string(rune('a'+m.next-1))
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	m.items[item.ID] = &item
	copy := item
	return &copy, nil
}

func (m *mockItemRepo) Get(_ context.Context, id string) (*menu.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	copy := *item
	return &copy, nil
}

func (m *mockItemRepo) List(_ context.Context) ([]menu.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []menu.Item
	for _, item := range m.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockItemRepo) ListByCategory(ctx context.Context, categoryID string) ([]menu.Item, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []menu.Item
	for _, item := range all {
		if item.Category == categoryID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockItemRepo) Update(_ context.Context, id string, fields map[string]any) error {
	if m.err != nil {
		return m.err
	}
	item, ok := m.items[id]
	if !ok {
		return menu.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		item.Name = v
	}
	if v, ok := fields["basePrice"].(float64); ok {
		item.BasePrice = v
	}
	item.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockItemRepo) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.items, id)
	return nil
}

type mockCategoryRepo struct {
	categories map[string]*menu.Category
	next       int
	err        error
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[string]*menu.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, name string) (*menu.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.next++
	now := time.Now().UTC()
	c := &menu.Category{
		ID:        "cat-" + string(rune('a'+m.next-1)),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.categories[c.ID] = c
	copy := *c
	return &copy, nil
}

func (m *mockCategoryRepo) List(_ context.Context) ([]menu.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []menu.Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, id string, fields map[string]any) error {
	if m.err != nil {
		return m.err
	}
	c, ok := m.categories[id]
	if !ok {
		return menu.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		c.Name = v
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.categories, id)
	return nil
}

type mockOrderRepo struct {
	orders map[string]*order.Order
	seq    []string // creation order, oldest first
	next   int
	err    error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*order.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, o order.Order) (*order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.next++
	o.ID = "order-" + string(rune('a'+m.next-1))
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	m.orders[o.ID] = &o
	m.seq = append(m.seq, o.ID)
	copy := o
	return &copy, nil
}

func (m *mockOrderRepo) Get(_ context.Context, id string) (*order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	copy := *o
	return &copy, nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]order.Order, 0, len(m.seq))
	for i := len(m.seq) - 1; i >= 0; i-- {
		out = append(out, *m.orders[m.seq[i]])
	}
	return out, nil
}

func (m *mockOrderRepo) ListByUserEmail(ctx context.Context, email string) ([]order.Order, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []order.Order
	for _, o := range all {
		if o.UserEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) Update(_ context.Context, id string, fields map[string]any) error {
	if m.err != nil {
		return m.err
	}
	o, ok := m.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	if v, ok := fields["paid"].(bool); ok {
		o.Paid = v
	}
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// testEnv bundles a guard and the mock repositories behind it.
type testEnv struct {
	guard      *auth.Guard
	users      *mockUserRepo
	items      *mockItemRepo
	categories *mockCategoryRepo
	orders     *mockOrderRepo
}

// newTestEnv seeds an admin ("admin-token"), a regular user ("user-token")
// and a verified identity without a profile ("ghost-token").
func newTestEnv() *testEnv {
	users := newMockUserRepo()
	users.users["admin-uid"] = &user.User{
		ID: "admin-uid", Email: "admin@example.com", Name: "Admin", Admin: true,
	}
	users.users["user-uid"] = &user.User{
		ID: "user-uid", Email: "user@example.com", Name: "Regular",
	}

	verifier := &mockVerifier{tokens: map[string]*auth.Claims{
		"admin-token": {UID: "admin-uid", Email: "admin@example.com"},
		"user-token":  {UID: "user-uid", Email: "user@example.com"},
		"ghost-token": {UID: "ghost-uid", Email: "ghost@example.com", Name: "Ghost"},
	}}

	return &testEnv{
		guard:      auth.NewGuard(verifier, users),
		users:      users,
		items:      newMockItemRepo(),
		categories: newMockCategoryRepo(),
		orders:     newMockOrderRepo(),
	}
}

var (
	_ user.Repository         = (*mockUserRepo)(nil)
	_ menu.ItemRepository     = (*mockItemRepo)(nil)
	_ menu.CategoryRepository = (*mockCategoryRepo)(nil)
	_ order.Repository        = (*mockOrderRepo)(nil)
	_ auth.TokenVerifier      = (*mockVerifier)(nil)
)
