package auth

import (
	"net/http"
	"strings"

	"github.com/forno-app/forno/internal/user"
)

// Denial is the structured result of a failed authorization check. It is a
// value, not an error: handlers must branch on it explicitly and return it
// as-is, which keeps the security-critical path free of implicit exception
// propagation.
type Denial struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func unauthorized() *Denial {
	return &Denial{Status: http.StatusUnauthorized, Message: "Unauthorized"}
}

func forbidden() *Denial {
	return &Denial{Status: http.StatusForbidden, Message: "Forbidden - Admin access required"}
}

// Guard composes token verification and profile resolution into the
// authorization checks used by route handlers. It holds no mutable state;
// all state lives in the request and the store.
type Guard struct {
	verifier TokenVerifier
	users    user.Repository
}

// NewGuard creates a Guard over the given verifier and user repository.
// The repository should be a privileged one: profile resolution runs in the
// trusted server context.
func NewGuard(verifier TokenVerifier, users user.Repository) *Guard {
	return &Guard{verifier: verifier, users: users}
}

// VerifyRequest extracts and verifies the bearer token from the request.
// It returns nil for a missing header, a non-Bearer scheme, an empty token,
// or any verification failure. Provider faults are swallowed: a transient
// outage must never be mistaken for a valid credential.
func (g *Guard) VerifyRequest(r *http.Request) *Claims {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return nil
	}

	claims, err := g.verifier.VerifyIDToken(r.Context(), token)
	if err != nil {
		return nil
	}
	return claims
}

// CurrentUser resolves the request's credential to a stored profile. The
// profile ID is overwritten with the verified UID so callers always have a
// stable identifier, even for a sparse profile. Returns nil when the token
// is invalid, no profile exists, or resolution fails.
func (g *Guard) CurrentUser(r *http.Request) *user.User {
	claims := g.VerifyRequest(r)
	if claims == nil {
		return nil
	}

	u, err := g.users.Get(r.Context(), claims.UID)
	if err != nil || u == nil {
		return nil
	}

	u.ID = claims.UID
	return u
}

// IsAuthenticated reports whether the request carries a valid token.
// Profile existence is not required.
func (g *Guard) IsAuthenticated(r *http.Request) bool {
	return g.VerifyRequest(r) != nil
}

// IsAdmin reports whether the request resolves to a profile with the admin
// flag set. Any fault along the way yields false.
func (g *Guard) IsAdmin(r *http.Request) bool {
	u := g.CurrentUser(r)
	return u != nil && u.Admin
}

// RequireAuth returns the resolved profile, or a 401 denial when the
// request cannot be resolved to one.
func (g *Guard) RequireAuth(r *http.Request) (*user.User, *Denial) {
	u := g.CurrentUser(r)
	if u == nil {
		return nil, unauthorized()
	}
	return u, nil
}

// RequireAdmin returns the resolved profile when it has the admin flag.
// No resolvable profile yields 401; a resolved non-admin profile yields
// 403. 401 always takes precedence over 403.
func (g *Guard) RequireAdmin(r *http.Request) (*user.User, *Denial) {
	u := g.CurrentUser(r)
	if u == nil {
		return nil, unauthorized()
	}
	if !u.Admin {
		return nil, forbidden()
	}
	return u, nil
}
