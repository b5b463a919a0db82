package model

import "github.com/Laisky/errors/v2"

// ErrCourseNotFound indicates a subject write against a course id that
// does not exist. Courses are never auto-created by subject saves.
var ErrCourseNotFound = errors.New("course not found")
