package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/forno-app/forno/internal/store"
)

const collectionName = "users"

// ErrNotFound is returned when an update targets a missing profile.
var ErrNotFound = errors.New("user not found")

// FirestoreRepository implements Repository using Firestore.
type FirestoreRepository struct {
	client *store.Client
}

var _ Repository = (*FirestoreRepository)(nil)

// NewFirestoreRepository creates a FirestoreRepository on the given client.
// The client's access mode decides whether administrative operations
// (List, Delete) are permitted.
func NewFirestoreRepository(client *store.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

// Create persists a new profile under the given UID.
func (r *FirestoreRepository) Create(ctx context.Context, uid string, u User) (*User, error) {
	now := time.Now().UTC()
	u.ID = uid
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.client.Firestore().Collection(collectionName).Doc(uid).Set(ctx, toData(u))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}

// Get retrieves a profile by UID. Returns (nil, nil) when absent.
func (r *FirestoreRepository) Get(ctx context.Context, uid string) (*User, error) {
	doc, err := r.client.Firestore().Collection(collectionName).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u := fromData(doc.Ref.ID, doc.Data())
	return &u, nil
}

// GetByEmail retrieves the first profile with the given email.
func (r *FirestoreRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	docs, err := r.client.Firestore().Collection(collectionName).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	if len(docs) == 0 {
		return nil, nil
	}

	u := fromData(docs[0].Ref.ID, docs[0].Data())
	return &u, nil
}

// List returns all profiles in store order.
func (r *FirestoreRepository) List(ctx context.Context) ([]User, error) {
	if !r.client.Privileged() {
		return nil, store.ErrPermissionDenied
	}

	docs, err := r.client.Firestore().Collection(collectionName).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, fromData(doc.Ref.ID, doc.Data()))
	}
	return users, nil
}

// Update overlays fields onto an existing profile.
func (r *FirestoreRepository) Update(ctx context.Context, uid string, fields map[string]any) error {
	updates := store.UpdatesFromFields(fields, time.Now().UTC())

	_, err := r.client.Firestore().Collection(collectionName).Doc(uid).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a profile. Firestore deletes are idempotent, so deleting a
// missing profile succeeds.
func (r *FirestoreRepository) Delete(ctx context.Context, uid string) error {
	if !r.client.Privileged() {
		return store.ErrPermissionDenied
	}

	_, err := r.client.Firestore().Collection(collectionName).Doc(uid).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// toData converts a User to its Firestore field map.
func toData(u User) map[string]any {
	data := map[string]any{
		"email":     u.Email,
		"admin":     u.Admin,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
	if u.Name != "" {
		data["name"] = u.Name
	}
	if u.Image != "" {
		data["image"] = u.Image
	}
	return data
}

// fromData converts a Firestore field map to a User.
func fromData(id string, data map[string]any) User {
	u := User{ID: id}

	if email, ok := data["email"].(string); ok {
		u.Email = email
	}
	if name, ok := data["name"].(string); ok {
		u.Name = name
	}
	if image, ok := data["image"].(string); ok {
		u.Image = image
	}
	if admin, ok := data["admin"].(bool); ok {
		u.Admin = admin
	}
	if createdAt, ok := data["createdAt"].(time.Time); ok {
		u.CreatedAt = createdAt
	}
	if updatedAt, ok := data["updatedAt"].(time.Time); ok {
		u.UpdatedAt = updatedAt
	}

	return u
}
