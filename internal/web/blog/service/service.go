// Package service is the service layer of blog and notice publishing.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/blog/dao"
	"github.com/aahabhisheksingh/studyhub-api/internal/web/blog/model"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
	"github.com/aahabhisheksingh/studyhub-api/library/storage"
)

var Instance *Blog

// Store is the slice of the blog dao the service depends on.
type Store interface {
	GetPublishedPosts(ctx context.Context, limit int) ([]*model.Post, error)
	GetAllPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, postID string) (*model.Post, error)
	SavePost(ctx context.Context, postID string, fields map[string]any) error
	DeletePost(ctx context.Context, postID string) error
}

// ObjectStorage is the slice of the storage client the service depends on.
type ObjectStorage interface {
	UploadBlogMedia(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

// Blog publishing service
type Blog struct {
	logger  glog.Logger
	store   Store
	storage ObjectStorage
}

func Initialize(ctx context.Context, storage ObjectStorage) {
	dao.Initialize(ctx)
	Instance = New(log.Logger.Named("blog"), dao.Instance, storage)
}

// New new blog service
func New(logger glog.Logger, store Store, storage ObjectStorage) *Blog {
	return &Blog{
		logger:  logger,
		store:   store,
		storage: storage,
	}
}

// ListPublished returns at most limit published posts, newest first.
func (s *Blog) ListPublished(ctx context.Context, limit int) ([]*model.Post, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.GetPublishedPosts(ctx, limit)
}

// ListAll returns every post including drafts. Admin only.
func (s *Blog) ListAll(ctx context.Context) ([]*model.Post, error) {
	return s.store.GetAllPosts(ctx)
}

// GetPost returns nil without error when the post does not exist.
func (s *Blog) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	return s.store.GetPost(ctx, postID)
}

// MediaUpload is a file accompanying a post save.
type MediaUpload struct {
	OriginalFileName string
	ContentType      string
	Size             int64
	Content          io.Reader
}

// PostInput carries everything a post save needs. An empty ID means
// create; a non-empty ID edits the existing post in place.
type PostInput struct {
	ID          string
	Title       string
	Description string
	Content     string
	Type        model.PostType
	MediaType   model.MediaType
	// MediaURL is an externally hosted media link typed into the form.
	// A Media upload of type image or video replaces it.
	MediaURL  string
	Published bool
	Author    string
	Media     *MediaUpload
}

// SavePost validates the input, uploads accompanying media first so a
// failed upload never leaves a record pointing at nothing, then
// merge-upserts the post document.
//
// Editing preserves the original createdAt and refreshes updatedAt.
// Optional fields are written only when non-empty.
func (s *Blog) SavePost(ctx context.Context, in PostInput) (*model.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.Description == "" || in.Content == "" {
		return nil, errors.Wrap(model.ErrInvalidPost,
			"title, description and content are required")
	}
	if strings.TrimSpace(in.Author) == "" {
		return nil, errors.Wrap(model.ErrInvalidPost, "a signed-in author is required")
	}
	if !in.Type.Valid() {
		return nil, errors.Wrapf(model.ErrInvalidPost, "post type %q", in.Type)
	}
	if !in.MediaType.Valid() {
		return nil, errors.Wrapf(model.ErrInvalidPost, "media type %q", in.MediaType)
	}

	now := gutils.Clock.GetUTCNow()
	postID := in.ID
	if postID == "" {
		postID = fmt.Sprintf("post-%d", now.UnixMilli())
	}

	mediaURL := strings.TrimSpace(in.MediaURL)
	var fileURL, fileName string
	if in.Media != nil &&
		in.MediaType != model.MediaTypeNone && in.MediaType != model.MediaTypeArticle {
		path := storage.BlogMediaPath(postID, in.Media.OriginalFileName, now)
		url, err := s.storage.UploadBlogMedia(ctx,
			path, in.Media.Content, in.Media.Size, in.Media.ContentType)
		if err != nil {
			return nil, errors.Wrapf(err, "upload %s media", in.MediaType)
		}

		switch in.MediaType {
		case model.MediaTypeImage, model.MediaTypeVideo:
			mediaURL = url
		case model.MediaTypeFile:
			fileURL = url
			fileName = in.Media.OriginalFileName
		}
	}

	post := &model.Post{
		ID:          postID,
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Type:        in.Type,
		MediaType:   in.MediaType,
		MediaURL:    mediaURL,
		FileURL:     fileURL,
		FileName:    fileName,
		Author:      in.Author,
		CreatedAt:   now,
		UpdatedAt:   now,
		Published:   in.Published,
	}
	if in.ID != "" {
		existing, err := s.store.GetPost(ctx, in.ID)
		if err != nil {
			return nil, errors.Wrap(err, "load existing post")
		}
		if existing != nil {
			post.CreatedAt = existing.CreatedAt
		}
	}

	if err := s.store.SavePost(ctx, postID, post.ToDoc()); err != nil {
		return nil, err
	}

	s.logger.Info("saved blog post",
		zap.String("post", postID),
		zap.Bool("published", post.Published))
	return post, nil
}

// DeletePost removes the post document, then clears the post's media
// folder in object storage so deleted posts stop accumulating orphaned
// files. Storage failures are logged, the record removal stands.
func (s *Blog) DeletePost(ctx context.Context, postID string) error {
	if err := s.store.DeletePost(ctx, postID); err != nil {
		return err
	}

	if err := s.storage.DeletePrefix(ctx, "blog/"+postID+"/"); err != nil {
		s.logger.Error("delete blog media",
			zap.String("post", postID), zap.Error(err))
	}

	return nil
}
