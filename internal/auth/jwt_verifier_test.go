package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"campaigner/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

func testVerifier(t *testing.T, audience string) (*JWKSVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	kf := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
			return []byte("shared-secret"), nil
		}
		return &key.PublicKey, nil
	}
	return newVerifier(kf, audience, slog.New(slog.NewTextHandler(io.Discard, nil))), key
}

func claimsFor(sub string, exp time.Time, aud ...string) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
			Audience:  aud,
		},
		Email: "writer@example.com",
	}
}

func TestVerifyToken(t *testing.T) {
	v, key := testVerifier(t, "studio")
	future := time.Now().Add(time.Hour)

	sign := func(method jwt.SigningMethod, claims Claims, k any) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(k)
		if err != nil {
			t.Fatalf("SignedString: %v", err)
		}
		return s
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", sign(jwt.SigningMethodRS256, claimsFor("user-1", future, "studio"), key), false},
		{"expired", sign(jwt.SigningMethodRS256, claimsFor("user-1", time.Now().Add(-time.Hour), "studio"), key), true},
		{"wrong audience", sign(jwt.SigningMethodRS256, claimsFor("user-1", future, "other"), key), true},
		{"missing subject", sign(jwt.SigningMethodRS256, claimsFor("", future, "studio"), key), true},
		{"symmetric algorithm", sign(jwt.SigningMethodHS256, claimsFor("user-1", future, "studio"), []byte("shared-secret")), true},
		{"garbage", "not.a.token", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnauthorized) {
					t.Errorf("err = %v, want ErrUnauthorized", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyToken: %v", err)
			}
			if claims.UserID() != "user-1" || claims.Email != "writer@example.com" {
				t.Errorf("claims = %+v", claims)
			}
		})
	}
}

func TestNewJWTVerifierRequiresURL(t *testing.T) {
	if _, err := NewJWTVerifier("", "", slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Error("error = nil, want error")
	}
}
