package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)
	user := &domain.User{ID: "user-123", Email: "user@example.com"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	if claims.UserID != user.ID || claims.Email != user.Email || claims.Subject != user.ID {
		t.Fatalf("expected claims to match user, got %+v", claims)
	}

	if got := claims.User(); got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
}

func TestJWTManagerGenerateRequiresUser(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)
	if _, err := manager.Generate(&domain.User{}); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected missing field error, got %v", err)
	}
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	sign := func(claims auth.Claims, secret string) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		return token
	}

	expiredToken := sign(auth.Claims{
		UserID: "expired",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}, "secret")

	if _, err := manager.Verify(expiredToken); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	otherManager := auth.NewJWTManager("other-secret", time.Minute)
	if _, err := otherManager.Verify(expiredToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	foreignIssuer := sign(auth.Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}, "secret")
	if _, err := manager.Verify(foreignIssuer); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected foreign issuer to be rejected, got %v", err)
	}

	anonymous := sign(auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}, "secret")
	if _, err := manager.Verify(anonymous); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected token without user to be rejected, got %v", err)
	}

	if _, err := manager.Verify("not-a-token"); err == nil {
		t.Fatalf("expected failure for malformed token")
	}
}
