package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	firebaseAuth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// idTokenVerifier is the part of firebaseAuth.Client we use.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseAuth.Token, error)
}

// FirebaseTokenVerifier implements TokenVerifier using the Firebase Admin SDK.
type FirebaseTokenVerifier struct {
	verifier idTokenVerifier
}

// FirebaseConfig holds configuration for the Firebase token verifier.
type FirebaseConfig struct {
	ProjectID   string
	Credentials string // path to service account JSON (optional)
}

// NewFirebaseTokenVerifier creates a verifier backed by a Firebase app.
func NewFirebaseTokenVerifier(ctx context.Context, cfg FirebaseConfig) (*FirebaseTokenVerifier, error) {
	var opts []option.ClientOption
	if cfg.Credentials != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Credentials))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	return &FirebaseTokenVerifier{verifier: client}, nil
}

// VerifyIDToken verifies a Firebase ID token and returns the decoded claims.
func (v *FirebaseTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Claims, error) {
	token, err := v.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	return &Claims{
		UID:     token.UID,
		Email:   stringClaim(token.Claims, "email"),
		Name:    stringClaim(token.Claims, "name"),
		Picture: stringClaim(token.Claims, "picture"),
	}, nil
}

// stringClaim safely extracts a string claim from the claims map.
func stringClaim(claims map[string]any, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
