package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	token, err := codec.Mint("user-1", domain.RoleTechnician)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	assertion, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if assertion.SubjectID != "user-1" {
		t.Fatalf("expected subject user-1, got %s", assertion.SubjectID)
	}
	if assertion.Role != domain.RoleTechnician {
		t.Fatalf("expected role technician, got %s", assertion.Role)
	}
}

func TestCodec_NoSecret(t *testing.T) {
	codec := NewCodec("", time.Hour)

	if _, err := codec.Mint("user-1", domain.RoleCustomer); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret from Mint, got %v", err)
	}
	if _, err := codec.Verify("anything"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret from Verify, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	// Build an already-expired token with the same claims shape.
	now := time.Now().UTC()
	claims := Claims{
		Role: string(domain.RoleCustomer),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	codec := NewCodec("secret", time.Hour)
	if _, err := codec.Verify(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	minted := NewCodec("secret-a", time.Hour)
	token, err := minted.Mint("user-1", domain.RoleStaff)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	verifier := NewCodec("secret-b", time.Hour)
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	if _, err := codec.Verify("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_RejectsNonHMAC(t *testing.T) {
	// Tokens signed with the "none" algorithm must never verify.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: string(domain.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	codec := NewCodec("secret", time.Hour)
	if _, err := codec.Verify(unsigned); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_DefaultTTL(t *testing.T) {
	codec := NewCodec("secret", 0)
	if codec.ttl != DefaultTTL {
		t.Fatalf("expected default TTL %v, got %v", DefaultTTL, codec.ttl)
	}
}
