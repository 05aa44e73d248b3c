package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campaigner/internal/domain"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// Only asymmetric algorithms are accepted
var allowedAlgorithms = []string{"RS256", "ES256"}

// JWKSVerifier implements TokenVerifier against a JWKS endpoint
type JWKSVerifier struct {
	keyfunc  jwt.Keyfunc
	audience string
	cancel   context.CancelFunc
	logger   *slog.Logger
}

// NewJWTVerifier creates a verifier that fetches public keys from jwksURL.
// keyfunc v3 caches the key set and refreshes it in the background until Close.
// An empty audience skips the aud check.
func NewJWTVerifier(jwksURL, audience string, logger *slog.Logger) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	v := newVerifier(jwks.Keyfunc, audience, logger)
	v.cancel = cancel
	return v, nil
}

func newVerifier(kf jwt.Keyfunc, audience string, logger *slog.Logger) *JWKSVerifier {
	return &JWKSVerifier{keyfunc: kf, audience: audience, logger: logger}
}

// VerifyToken validates signature, expiry, algorithm and subject
func (v *JWKSVerifier) VerifyToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods(allowedAlgorithms), jwt.WithExpirationRequired()}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keyfunc, opts...)
	if err != nil {
		v.logger.Debug("token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		v.logger.Error("unexpected claims type")
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		v.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close stops the background JWKS refresh
func (v *JWKSVerifier) Close() error {
	if v.cancel != nil {
		v.cancel()
	}
	v.logger.Info("JWT verifier closed")
	return nil
}
