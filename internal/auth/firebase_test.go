package auth

import (
	"context"
	"errors"
	"testing"

	firebaseAuth "firebase.google.com/go/v4/auth"
)

// fakeIDTokenVerifier implements idTokenVerifier for testing
type fakeIDTokenVerifier struct {
	token *firebaseAuth.Token
	err   error
}

func (f *fakeIDTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*firebaseAuth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

func TestVerifyIDToken_ExtractsClaims(t *testing.T) {
	token := &firebaseAuth.Token{
		UID: "u1",
		Claims: map[string]any{
			"email":   "a@x.com",
			"name":    "Ada",
			"picture": "https://example.com/a.png",
		},
	}
	v := &FirebaseTokenVerifier{verifier: &fakeIDTokenVerifier{token: token}}

	claims, err := v.VerifyIDToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("VerifyIDToken: %v", err)
	}
	if claims.UID != "u1" || claims.Email != "a@x.com" || claims.Name != "Ada" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestVerifyIDToken_MissingOptionalClaims(t *testing.T) {
	token := &firebaseAuth.Token{
		UID:    "u2",
		Claims: map[string]any{"email": 123}, // wrong type
	}
	v := &FirebaseTokenVerifier{verifier: &fakeIDTokenVerifier{token: token}}

	claims, err := v.VerifyIDToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("VerifyIDToken: %v", err)
	}
	if claims.UID != "u2" {
		t.Errorf("UID = %q", claims.UID)
	}
	if claims.Email != "" || claims.Name != "" || claims.Picture != "" {
		t.Errorf("optional claims should be empty: %+v", claims)
	}
}

func TestVerifyIDToken_ProviderRejection(t *testing.T) {
	v := &FirebaseTokenVerifier{verifier: &fakeIDTokenVerifier{err: errors.New("token expired")}}

	if _, err := v.VerifyIDToken(context.Background(), "tok"); err == nil {
		t.Fatal("expected error")
	}
}
