package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/model"
)

const (
	invalidCredentialsMessage = "Invalid email or password. " +
		"If you haven't created an account yet, please click 'Sign Up' first."
	accountDisabledMessage = "This account has been disabled. " +
		"Please contact the administrator."
	tooManyAttemptsMessage = "Too many failed attempts. Please try again later."
	loginFailedMessage     = "Login failed. Please try again."
)

// maskLoginError maps a login failure to a status code and a client
// message. Unknown account and wrong password stay indistinguishable,
// anything unexpected collapses into a generic failure.
func maskLoginError(err error) (status int, msg string) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, invalidCredentialsMessage
	case errors.Is(err, model.ErrAccountDisabled):
		return http.StatusForbidden, accountDisabledMessage
	case errors.Is(err, model.ErrTooManyAttempts):
		return http.StatusTooManyRequests, tooManyAttemptsMessage
	default:
		return http.StatusInternalServerError, loginFailedMessage
	}
}
