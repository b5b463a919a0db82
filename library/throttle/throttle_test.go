package throttle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoginThrottleValidatesCfg(t *testing.T) {
	ctx := context.Background()

	_, err := NewLoginThrottle(ctx, &LoginThrottleCfg{
		TotalNPerSec: 0, TotalBurst: 10,
		EachAccountNPerSec: 1, EachAccountBurst: 5,
	})
	require.Error(t, err)

	_, err = NewLoginThrottle(ctx, &LoginThrottleCfg{
		TotalNPerSec: 10, TotalBurst: 5,
		EachAccountNPerSec: 1, EachAccountBurst: 5,
	})
	require.Error(t, err)
}

// TestAllowPerAccount verifies draining one account's tokens does not
// lock out another account.
func TestAllowPerAccount(t *testing.T) {
	ctx := context.Background()

	lt, err := NewLoginThrottle(ctx, &LoginThrottleCfg{
		TotalNPerSec: 100, TotalBurst: 100,
		EachAccountNPerSec: 1, EachAccountBurst: 5,
	})
	require.NoError(t, err)

	// a fresh account limiter starts with NPerSec tokens
	require.True(t, lt.Allow("alice@example.com"))
	require.False(t, lt.Allow("alice@example.com"))

	require.True(t, lt.Allow("bob@example.com"))
}
