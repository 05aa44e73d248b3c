package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the subset of bearer token claims the studio reads
type Claims struct {
	jwt.RegisteredClaims        // sub, iss, aud, exp, iat
	Email                string `json:"email,omitempty"`
	Role                 string `json:"role,omitempty"`
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenVerifier validates bearer tokens.
// The middleware only depends on this, not on how keys are fetched.
type TokenVerifier interface {
	// VerifyToken returns the claims of a valid token, or domain.ErrUnauthorized
	VerifyToken(tokenString string) (*Claims, error)

	// Close releases resources held by the verifier
	Close() error
}
