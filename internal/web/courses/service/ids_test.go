package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDeriveCourseID verifies the derived id is idempotent and only ever
// contains lowercase letters, digits and hyphens.
func TestDeriveCourseID(t *testing.T) {
	require.Equal(t, "computer-science", DeriveCourseID("Computer Science"))
	require.Equal(t, "computer-science", DeriveCourseID(DeriveCourseID("Computer Science")))
	require.Equal(t, "bsc-it", DeriveCourseID("  BSc   IT "))
	require.Equal(t, "mca-2024", DeriveCourseID("MCA (2024)!"))
	require.Regexp(t, `^[a-z0-9-]*$`, DeriveCourseID("Ärger & Møre 123"))
}

// TestDeriveOrdinalID verifies the first numeric substring wins, and the
// sibling-count fallback for digitless names at 0, 1 and N siblings.
func TestDeriveOrdinalID(t *testing.T) {
	require.Equal(t, "1", DeriveOrdinalID("First Year 1", 0))
	require.Equal(t, "2", DeriveOrdinalID("Semester 2", 5))
	require.Equal(t, "3", DeriveOrdinalID("3rd Year", 0))

	require.Equal(t, "1", DeriveOrdinalID("Final Year", 0))
	require.Equal(t, "2", DeriveOrdinalID("Final Year", 1))
	require.Equal(t, "8", DeriveOrdinalID("Final Year", 7))
}

func TestDeriveSubjectID(t *testing.T) {
	// no hyphen inserted absent whitespace
	require.Equal(t, "cs201", DeriveSubjectID("cs201"))
	require.Equal(t, "cs201", DeriveSubjectID("CS201"))
	require.Equal(t, "cs-201", DeriveSubjectID("CS 201"))
}

func TestNewNoteID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	require.Equal(t, "1700000000000-0", NewNoteID(now, 0))
	require.Equal(t, "1700000000000-3", NewNoteID(now, 3))
	require.Equal(t, "1700000000000", NewLinkID(now))
}
