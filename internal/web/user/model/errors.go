package model

import "github.com/Laisky/errors/v2"

// ErrInvalidCredentials indicates the account or password is wrong,
// or the account does not exist. Kept indistinguishable on purpose.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountDisabled indicates the account exists but has been blocked.
var ErrAccountDisabled = errors.New("account disabled")

// ErrTooManyAttempts indicates the login throttle rejected the attempt.
var ErrTooManyAttempts = errors.New("too many attempts")

// ErrAccountExists indicates a signup against an already registered email.
var ErrAccountExists = errors.New("account already exists")
