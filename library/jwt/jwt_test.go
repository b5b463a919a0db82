package jwt

import (
	"testing"
	"time"

	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// TestSignAndParseClaims round-trips session claims through the shared
// HS256 signer.
func TestSignAndParseClaims(t *testing.T) {
	require.NoError(t, Initialize([]byte("test-secret-0123456789abcdef0123")))

	now := time.Now().UTC()
	in := &UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  &jwtLib.NumericDate{Time: now},
			ExpiresAt: &jwtLib.NumericDate{Time: now.Add(time.Hour)},
		},
		Account:     "alice@example.com",
		DisplayName: "Alice",
	}

	token, err := Instance.Sign(in)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	out := new(UserClaims)
	require.NoError(t, Instance.ParseClaims(token, out))
	require.Equal(t, "alice@example.com", out.Account)
	require.Equal(t, "Alice", out.DisplayName)
	require.Equal(t, "user-1", out.Subject)
}

// TestParseClaimsRejectsForeignSignature verifies a token signed with a
// different secret never validates.
func TestParseClaimsRejectsForeignSignature(t *testing.T) {
	require.NoError(t, Initialize([]byte("test-secret-0123456789abcdef0123")))

	other := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, &UserClaims{
		Account: "mallory@example.com",
	})
	token, err := other.SignedString([]byte("another-secret-fedcba98765432"))
	require.NoError(t, err)

	require.Error(t, Instance.ParseClaims(token, new(UserClaims)))
}
