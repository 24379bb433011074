package token_test

import (
	"math"
	"testing"
	"time"

	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/token"
	"github.com/jrsteele09/podmixer-console/token/jwt"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	creator := jwt.NewCreator("secret")
	iat := time.Unix(1_700_000_000, 0)
	exp := iat.Add(time.Hour)

	raw, err := creator.CreateWithExpiry("admin", iat, exp)
	require.NoError(t, err)

	claims, err := token.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.True(t, claims.IssuedAt.Equal(iat))
	require.True(t, claims.ExpiresAt.Equal(exp))
}

func TestDecodeIgnoresSignature(t *testing.T) {
	raw, err := jwt.NewCreator("someone-elses-key").Create("admin", time.Minute)
	require.NoError(t, err)

	_, err = token.Decode(raw)
	require.NoError(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-token", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.bm9wZQ.sig"} {
		_, err := token.Decode(raw)
		require.ErrorIs(t, err, errors.ErrMalformedToken, "raw=%q", raw)
	}
}

func TestDecodeMissingExpiry(t *testing.T) {
	raw, err := jwt.NewCreator("secret").CreateWithoutExpiry("admin")
	require.NoError(t, err)

	_, err = token.Decode(raw)
	require.ErrorIs(t, err, errors.ErrMissingExpiry)
}

func TestRemaining(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_250)
	claims := token.Claims{ExpiresAt: time.Unix(1_700_000_005, 0)}
	require.Equal(t, 4750*time.Millisecond, claims.Remaining(now))

	claims = token.Claims{ExpiresAt: time.Unix(1_699_999_999, 0)}
	require.LessOrEqual(t, claims.Remaining(now), time.Duration(0))
}

func TestRemainingFarFuture(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	claims := token.Claims{ExpiresAt: time.Unix(20_000_000_000, 0)}
	require.Equal(t, time.Duration(math.MaxInt64).Truncate(time.Millisecond), claims.Remaining(now))
}
