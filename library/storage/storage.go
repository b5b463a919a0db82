// Package storage uploads study notes and blog media to the object store
// and hands back durable download URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

// Client is a path-addressed blob store backed by minio/S3.
type Client struct {
	cli       *minio.Client
	bucket    string
	publicURL string
}

// Config connection settings for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is the base under which uploaded objects are reachable,
	// e.g. "https://files.studyhub.example". The object path is appended as-is,
	// so already-stored assets keep their URLs across deployments.
	PublicURL string
	UseSSL    bool
}

// New connects to the object store and verifies the bucket exists.
func New(ctx context.Context, cfg Config) (*Client, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "check bucket %q", cfg.Bucket)
	}
	if !exists {
		return nil, errors.Errorf("bucket %q not found", cfg.Bucket)
	}

	log.Logger.Info("connected object storage",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))
	return &Client{
		cli:       cli,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores the object at path and returns its durable URL.
func (c *Client) Upload(ctx context.Context,
	path string, r io.Reader, size int64, contentType string) (url string, err error) {
	if _, err = c.cli.PutObject(ctx, c.bucket, path, r, size,
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	); err != nil {
		return "", errors.Wrapf(err, "put object %q", path)
	}

	log.Logger.Debug("uploaded object", zap.String("path", path))
	return c.FileURL(path), nil
}

// Delete removes the object at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	if err := c.cli.RemoveObject(ctx, c.bucket, path,
		minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove object %q", path)
	}

	return nil
}

// DeletePrefix removes every object under the given path prefix.
// Used to clear a blog post's media folder when the post is deleted.
func (c *Client) DeletePrefix(ctx context.Context, prefix string) error {
	for obj := range c.cli.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return errors.Wrapf(obj.Err, "list objects under %q", prefix)
		}
		if err := c.Delete(ctx, obj.Key); err != nil {
			return err
		}
	}

	return nil
}

// FileURL returns the durable URL for an object path.
func (c *Client) FileURL(path string) string {
	return c.publicURL + "/" + path
}

// UploadNoteFile stores a subject note or book.
// It is the same operation as UploadBlogMedia, named for call-site clarity.
func (c *Client) UploadNoteFile(ctx context.Context,
	path string, r io.Reader, size int64, contentType string) (string, error) {
	return c.Upload(ctx, path, r, size, contentType)
}

// UploadBlogMedia stores a blog image, video or attachment.
func (c *Client) UploadBlogMedia(ctx context.Context,
	path string, r io.Reader, size int64, contentType string) (string, error) {
	return c.Upload(ctx, path, r, size, contentType)
}

// DeleteNoteFile removes a stored note by path. Blog media is removed
// wholesale through DeletePrefix on the post's folder instead.
func (c *Client) DeleteNoteFile(ctx context.Context, path string) error {
	return c.Delete(ctx, path)
}

// NoteObjectPath builds the storage path for a subject note upload.
// The layout must stay stable, already-stored assets are addressed by it.
func NoteObjectPath(courseID, yearID, semesterID, subjectID, originalFileName string, now time.Time) string {
	return fmt.Sprintf("notes/%s/%s/%s/%s/%d-%s",
		courseID, yearID, semesterID, subjectID, now.UnixMilli(), originalFileName)
}

// BlogMediaPath builds the storage path for a blog media upload.
func BlogMediaPath(postID, originalFileName string, now time.Time) string {
	return fmt.Sprintf("blog/%s/%d-%s", postID, now.UnixMilli(), originalFileName)
}

// FormatFileSize renders a byte count the way the portal shows it:
// two-decimal KB below 1 MB, two-decimal MB from there on.
func FormatFileSize(size int64) string {
	sizeInMB := float64(size) / (1024 * 1024)
	if sizeInMB < 1 {
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	}
	return fmt.Sprintf("%.2f MB", sizeInMB)
}
