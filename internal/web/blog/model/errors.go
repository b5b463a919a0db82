package model

import "github.com/Laisky/errors/v2"

// ErrInvalidPost marks post input rejected before any store or storage
// call, so controllers can blame the caller instead of the backend.
var ErrInvalidPost = errors.New("invalid post")
