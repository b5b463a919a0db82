package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	invalidIDCharRe = regexp.MustCompile(`[^a-z0-9-]`)
	firstNumberRe   = regexp.MustCompile(`\d+`)
)

// DeriveCourseID derives the course document id from its display name:
// lowercase, whitespace runs become hyphens, everything outside
// [a-z0-9-] is stripped. Deterministic, so the same name always maps to
// the same id; a colliding name silently overwrites the sibling.
func DeriveCourseID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = whitespaceRe.ReplaceAllString(id, "-")
	return invalidIDCharRe.ReplaceAllString(id, "")
}

// DeriveOrdinalID derives a year or semester id from its name: the first
// numeric substring when present, else the current sibling count plus one.
// Not guaranteed unique when names collide in their numeric prefix.
func DeriveOrdinalID(name string, existingSiblings int) string {
	if m := firstNumberRe.FindString(name); m != "" {
		return m
	}

	return strconv.Itoa(existingSiblings + 1)
}

// DeriveSubjectID derives the subject id from its code: lowercase,
// whitespace runs become hyphens. No hyphen is inserted absent whitespace.
func DeriveSubjectID(code string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(code)), "-")
}

// NewLinkID returns the timestamp id assigned to a new study link.
func NewLinkID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// NewNoteID returns the id assigned to the idx-th note of one upload batch.
func NewNoteID(now time.Time, idx int) string {
	return fmt.Sprintf("%d-%d", now.UnixMilli(), idx)
}
