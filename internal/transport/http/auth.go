package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
)

// ErrInvalidToken is returned for a bearer token that fails verification or
// names an unknown account.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload. Subject carries the username.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the resolved caller of one request.
type Identity struct {
	Caller  domain.Caller
	Blocked bool
}

// IdentityResolver verifies HS256 bearer tokens against the user store.
type IdentityResolver struct {
	secret []byte
	users  contracts.UserStore
}

// NewIdentityResolver creates a new IdentityResolver.
func NewIdentityResolver(secret string, users contracts.UserStore) *IdentityResolver {
	return &IdentityResolver{secret: []byte(secret), users: users}
}

// Issue signs a token for username. Used by tooling and tests.
func (r *IdentityResolver) Issue(username string, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}

// Resolve maps the Authorization header to an identity. No header means an
// anonymous caller. The role stored for the account wins over the claim.
func (r *IdentityResolver) Resolve(ctx context.Context, header string) (Identity, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Identity{Caller: domain.Anonymous()}, nil
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return Identity{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	user, err := r.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, err
	}
	return Identity{Caller: domain.CallerFor(user), Blocked: user.IsBlocked()}, nil
}

type identityKey struct{}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Identity{Caller: domain.Anonymous()}
}

func callerFrom(r *http.Request) domain.Caller {
	return IdentityFrom(r.Context()).Caller
}

// Authenticate resolves the caller of every request. A present but invalid
// token is rejected; blocked accounts continue as anonymous readers.
func (s *Server) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.identity.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

// RequireUser rejects anonymous and blocked callers.
func (s *Server) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFrom(r.Context())
		switch {
		case id.Blocked:
			s.writeError(w, r, domain.ErrAccountBlocked)
		case !id.Caller.IsAuthenticated():
			s.writeError(w, r, domain.ErrUnauthenticated)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// RequireAdmin rejects everyone but administrators.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return s.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !callerFrom(r).IsAdmin() {
			s.writeError(w, r, domain.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
