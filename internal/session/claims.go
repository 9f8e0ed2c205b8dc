package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/SXPXL/eventflow/internal/model"
)

// Claims are the bearer-token claims the backend mints on staff login.
// The client decodes them without verifying the signature: verification
// is the backend's job, the claims are only used to avoid round trips
// that are certain to come back 401.
type Claims struct {
	Username string          `json:"sub"`
	Role     model.StaffRole `json:"role"`
	jwt.RegisteredClaims
}

// Claims decodes the stored token's claims. Returns nil when there is
// no token or it is not a well-formed JWT.
func (s *Store) Claims() *Claims {
	if s.state.Token == "" {
		return nil
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.state.Token, claims); err != nil {
		return nil
	}
	return claims
}

// Role returns the logged-in staff role, preferring the stored
// descriptor and falling back to token claims
func (s *Store) Role() model.StaffRole {
	if s.state.Staff != nil {
		return s.state.Staff.Role
	}
	if claims := s.Claims(); claims != nil {
		return claims.Role
	}
	return ""
}

// TokenExpired reports whether the stored token's expiry has passed.
// A token without parseable claims is not reported as expired; the
// backend stays the authority and will reject it with 401 if invalid.
func (s *Store) TokenExpired() bool {
	claims := s.Claims()
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return s.clock.Now().After(claims.ExpiresAt.Time)
}
