// Package auth mints and verifies the signed identity assertions issued at
// login. Tokens are stateless: nothing is persisted server-side and there
// is no revocation list. Minting and verification are pure functions of
// their inputs plus the clock, safe for concurrent use.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = 24 * time.Hour

var (
	// ErrNoSecret means no signing secret is configured. This is a server
	// misconfiguration, not a client fault.
	ErrNoSecret = errors.New("auth: signing secret not configured")
	// ErrTokenExpired means the assertion was valid but its lifetime passed.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenMalformed covers bad signatures, wrong algorithms, and
	// unparseable tokens.
	ErrTokenMalformed = errors.New("auth: token malformed")
)

// Claims is the payload carried by every assertion.
type Claims struct {
	Role string `json:"role"`
	JTI  string `json:"jti"`
	jwt.RegisteredClaims
}

// Assertion is the verified content of a token.
type Assertion struct {
	SubjectID string
	Role      domain.Role
}

// Codec mints and verifies HS256-signed assertions.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls
// back to DefaultTTL. An empty secret is allowed here; Mint and Verify
// reject it per call so the failure surfaces as a request error.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Mint produces a signed assertion binding subjectID and role for the
// codec's TTL.
func (c *Codec) Mint(subjectID string, role domain.Role) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now().UTC()
	claims := Claims{
		Role: string(role),
		JTI:  uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the assertion content.
func (c *Codec) Verify(tokenStr string) (*Assertion, error) {
	if len(c.secret) == 0 {
		return nil, ErrNoSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return &Assertion{
		SubjectID: claims.Subject,
		Role:      domain.Role(claims.Role),
	}, nil
}
