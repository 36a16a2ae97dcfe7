package user

import (
	"context"
)

// Repository defines storage operations for user profiles.
//
// Get and GetByEmail return (nil, nil) when no profile exists; absence is
// not an error. GetByEmail returns the first match only: email uniqueness
// is not enforced by this layer, so callers must not rely on it as a
// global-uniqueness guarantee.
type Repository interface {
	// Create persists a new profile under the given UID, stamping
	// createdAt and updatedAt. Caller-supplied timestamps are ignored.
	Create(ctx context.Context, uid string, u User) (*User, error)

	// Get retrieves a profile by UID.
	Get(ctx context.Context, uid string) (*User, error)

	// GetByEmail retrieves the first profile with the given email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns all profiles. Privileged access only.
	List(ctx context.Context) ([]User, error)

	// Update overlays the given fields onto an existing profile and
	// refreshes updatedAt. Returns ErrNotFound if no profile exists.
	Update(ctx context.Context, uid string, fields map[string]any) error

	// Delete removes a profile. Deleting a missing profile is a no-op.
	// Privileged access only.
	Delete(ctx context.Context, uid string) error
}
