// Package dao is the data access object over the blogPosts collection.
package dao

import (
	"context"

	fsSDK "cloud.google.com/go/firestore"
	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"google.golang.org/api/iterator"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/blog/model"
	fsDB "github.com/aahabhisheksingh/studyhub-api/library/db/firestore"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

const postsColName = "blogPosts"

var Instance *Blog

// Blog dao type
type Blog struct {
	logger glog.Logger
	db     *fsDB.DB
}

func Initialize(ctx context.Context) {
	model.Initialize(ctx)

	Instance = New(log.Logger.Named("blog_dao"), model.ContentDB)
}

// New create new dao
func New(logger glog.Logger, db *fsDB.DB) *Blog {
	return &Blog{
		logger: logger,
		db:     db,
	}
}

// GetPostsCol get blog posts collection
func (d *Blog) GetPostsCol() *fsSDK.CollectionRef {
	return d.db.Collection(postsColName)
}

// GetPublishedPosts returns at most limit published posts, newest first.
//
// It over-fetches twice the limit and filters published client-side,
// which keeps the store free of a composite (published, createdAt)
// index. When drafts dominate recent history, old published posts can
// be crowded out. Known limitation.
func (d *Blog) GetPublishedPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	iter := d.GetPostsCol().
		OrderBy("createdAt", fsSDK.Desc).
		Limit(limit * 2).
		Documents(ctx)
	defer iter.Stop()

	posts := make([]*model.Post, 0, limit)
	for {
		docu, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate blog posts")
		}

		post := new(model.Post)
		if err = docu.DataTo(post); err != nil {
			return nil, errors.Wrapf(err, "decode blog post %q", docu.Ref.ID)
		}
		if !post.Published {
			continue
		}

		post.ID = docu.Ref.ID
		posts = append(posts, post)
		if len(posts) == limit {
			break
		}
	}

	return posts, nil
}

// GetAllPosts returns every post, drafts included, newest first.
func (d *Blog) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	iter := d.GetPostsCol().
		OrderBy("createdAt", fsSDK.Desc).
		Documents(ctx)
	defer iter.Stop()

	var posts []*model.Post
	for {
		docu, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate blog posts")
		}

		post := new(model.Post)
		if err = docu.DataTo(post); err != nil {
			return nil, errors.Wrapf(err, "decode blog post %q", docu.Ref.ID)
		}

		post.ID = docu.Ref.ID
		posts = append(posts, post)
	}

	return posts, nil
}

// GetPost reads one post document, returning nil without error when absent.
func (d *Blog) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	docu, err := d.GetPostsCol().Doc(postID).Get(ctx)
	if err != nil {
		if fsDB.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrapf(err, "get blog post %q", postID)
	}

	post := new(model.Post)
	if err = docu.DataTo(post); err != nil {
		return nil, errors.Wrapf(err, "decode blog post %q", postID)
	}

	post.ID = docu.Ref.ID
	return post, nil
}

// SavePost merge-upserts the given fields into the post document.
func (d *Blog) SavePost(ctx context.Context, postID string, fields map[string]any) error {
	if _, err := d.GetPostsCol().Doc(postID).
		Set(ctx, fields, fsSDK.MergeAll); err != nil {
		return errors.Wrapf(err, "save blog post %q", postID)
	}

	d.logger.Debug("saved blog post", zap.String("post", postID))
	return nil
}

// DeletePost removes the post document. Irreversible.
func (d *Blog) DeletePost(ctx context.Context, postID string) error {
	if _, err := d.GetPostsCol().Doc(postID).Delete(ctx); err != nil {
		return errors.Wrapf(err, "delete blog post %q", postID)
	}

	d.logger.Info("deleted blog post", zap.String("post", postID))
	return nil
}
