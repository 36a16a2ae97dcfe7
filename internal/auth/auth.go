// Package auth provides bearer-token verification and the authorization
// guard that route handlers use to gate access.
package auth

import (
	"context"
)

// Claims represents the decoded identity from a verified Firebase ID token.
type Claims struct {
	UID     string `json:"uid"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// TokenVerifier verifies Firebase ID tokens.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Claims, error)
}
