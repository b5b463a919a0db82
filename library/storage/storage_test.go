package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatFileSize(t *testing.T) {
	require.Equal(t, "2.29 MB", FormatFileSize(2_400_000))
	require.Equal(t, "1.00 MB", FormatFileSize(1024*1024))
	require.Equal(t, "512.00 KB", FormatFileSize(512*1024))
	require.Equal(t, "0.10 KB", FormatFileSize(100))
	require.Equal(t, "0.00 KB", FormatFileSize(0))
}

// TestNoteObjectPath verifies the storage layout stays compatible with
// assets uploaded by earlier deployments.
func TestNoteObjectPath(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	path := NoteObjectPath("computer-science", "1", "2", "cs201", "Unit 1.pdf", now)
	require.Equal(t, "notes/computer-science/1/2/cs201/1700000000000-Unit 1.pdf", path)
}

func TestBlogMediaPath(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	path := BlogMediaPath("post-123", "banner.png", now)
	require.Equal(t, "blog/post-123/1700000000000-banner.png", path)
}
