// Package auth verifies externally issued bearer credentials. The service
// never issues production tokens itself; the shared-secret signer below only
// mirrors the external issuer for tests and local tooling.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoAuthToken indicates the request carried no bearer credential. The text
// is part of the API contract and surfaces verbatim to callers.
var ErrNoAuthToken = errors.New("No auth token")

// Claims is the payload asserted by a verified credential. It is transient:
// the session resolver is its only consumer and nothing persists it.
type Claims struct {
	UserID int64
	Role   string
}

// Verifier extracts claims from a raw bearer token. Abstracted so the
// concrete signature scheme can be swapped without touching the
// authorization core.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// MalformedTokenError carries the decoder's failure text, which surfaces
// verbatim to the caller.
type MalformedTokenError struct {
	reason string
	cause  error
}

func (e *MalformedTokenError) Error() string { return e.reason }
func (e *MalformedTokenError) Unwrap() error { return e.cause }

// IsMalformedToken reports whether err originated from token decoding.
func IsMalformedToken(err error) bool {
	var mte *MalformedTokenError
	return errors.As(err, &mte)
}

// tokenClaims is the wire shape the external issuer signs: a user id and a
// role alongside the registered claim set.
type tokenClaims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// HS256Verifier validates tokens signed with the shared issuer secret.
type HS256Verifier struct {
	secret []byte
}

var _ Verifier = (*HS256Verifier)(nil)

// NewHS256Verifier constructs a verifier over the issuer's shared secret.
func NewHS256Verifier(secret []byte) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth secret is not configured")
	}
	return &HS256Verifier{secret: secret}, nil
}

// Verify checks the token signature and structure and extracts claims.
// It is stateless and safe to call on every request.
func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, ErrNoAuthToken
	}
	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, decodeError(err)
	}
	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, &MalformedTokenError{reason: "jwt malformed"}
	}
	return Claims{UserID: tc.UserID, Role: tc.Role}, nil
}

// decodeError translates decoder failures into their caller-facing text.
// The structural-failure and bad-signature strings match the wire contract
// established by the external issuer's own client libraries.
func decodeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &MalformedTokenError{reason: "jwt malformed", cause: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &MalformedTokenError{reason: "invalid signature", cause: err}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &MalformedTokenError{reason: "jwt expired", cause: err}
	default:
		return &MalformedTokenError{reason: err.Error(), cause: err}
	}
}

// GenerateToken signs a credential the way the external issuer does.
// Used by tests, the smoke tool and local development only.
func GenerateToken(secret []byte, userID int64, role string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("auth secret is not configured")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be greater than zero")
	}
	now := time.Now().UTC()
	claims := tokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
