package token

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/podmixer-console/internal/errors"
)

// Claims holds the parts of a bearer token the console cares about.
type Claims struct {
	Subject   string    // Operator name (sub)
	IssuedAt  time.Time // iat, zero when absent
	ExpiresAt time.Time // exp
}

// Decoder extracts claims from a raw bearer token.
type Decoder func(raw string) (Claims, error)

var _ Decoder = Decode

// Decode reads the claims of a JWT without verifying its signature. The
// console never holds the signing key; the API verifies every request.
// It returns ErrMalformedToken when the token cannot be parsed and
// ErrMissingExpiry when it carries no exp claim.
func Decode(raw string) (Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return Claims{}, errors.ErrMalformedToken
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", errors.ErrMalformedToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("%w: error extracting claims", errors.ErrMalformedToken)
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", errors.ErrMalformedToken, err)
	}
	if exp == nil {
		return Claims{}, errors.ErrMissingExpiry
	}

	claims := Claims{ExpiresAt: exp.Time}
	claims.Subject, _ = mapClaims.GetSubject()
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	return claims, nil
}

// Remaining returns how long the token stays valid at now, in whole
// milliseconds. A zero or negative value means the token has expired. Expiries
// beyond the range of time.Duration saturate rather than wrap.
func (c Claims) Remaining(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now.Truncate(time.Millisecond)).Truncate(time.Millisecond)
}
