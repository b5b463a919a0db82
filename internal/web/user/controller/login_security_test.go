package controller

import (
	"net/http"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/model"
)

func TestMaskLoginError(t *testing.T) {
	status, msg := maskLoginError(errors.WithStack(model.ErrInvalidCredentials))
	require.Equal(t, http.StatusUnauthorized, status)
	require.Contains(t, msg, "Sign Up")

	status, msg = maskLoginError(errors.Wrap(model.ErrAccountDisabled, "login"))
	require.Equal(t, http.StatusForbidden, status)
	require.Contains(t, msg, "disabled")

	status, _ = maskLoginError(errors.WithStack(model.ErrTooManyAttempts))
	require.Equal(t, http.StatusTooManyRequests, status)

	// internal details never reach the client
	status, msg = maskLoginError(errors.New("mongo: connection reset"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.NotContains(t, msg, "mongo")
}
