package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Creator mints HS256 bearer tokens shaped like the ones the PodMixer API
// issues (sub, iat, exp). The in-memory API fake and the tests use it.
type Creator struct {
	secret []byte
}

// NewCreator creates a new JWT creator
func NewCreator(secret string) *Creator {
	return &Creator{
		secret: []byte(secret),
	}
}

// Create returns a token for subject that expires ttl from now. A negative
// ttl yields an already expired token.
func (c *Creator) Create(subject string, ttl time.Duration) (string, error) {
	now := NowTimeFunc()
	return c.CreateWithExpiry(subject, now, now.Add(ttl))
}

// CreateWithExpiry returns a token with explicit iat and exp instants.
func (c *Creator) CreateWithExpiry(subject string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwtlib.MapClaims{
		"sub": subject,
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
		"jti": uuid.New().String(),
	}
	return c.sign(claims)
}

// CreateWithoutExpiry returns a token that carries no exp claim.
func (c *Creator) CreateWithoutExpiry(subject string) (string, error) {
	return c.sign(jwtlib.MapClaims{
		"sub": subject,
		"iat": NowTimeFunc().Unix(),
	})
}

func (c *Creator) sign(claims jwtlib.MapClaims) (string, error) {
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}
