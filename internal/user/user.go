// Package user defines the user profile stored in Firestore.
package user

import (
	"time"
)

// User represents a user profile document. The document ID equals the
// Firebase Auth UID of the account that owns the profile.
type User struct {
	ID        string    `firestore:"-" json:"id"`
	Email     string    `firestore:"email" json:"email"`
	Name      string    `firestore:"name,omitempty" json:"name,omitempty"`
	Image     string    `firestore:"image,omitempty" json:"image,omitempty"`
	Admin     bool      `firestore:"admin" json:"admin"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
