// Package controller exposes blog and notice endpoints: public reads
// plus owner-only publishing.
package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/blog/model"
	"github.com/aahabhisheksingh/studyhub-api/internal/web/blog/service"
	"github.com/aahabhisheksingh/studyhub-api/library/auth"
	"github.com/aahabhisheksingh/studyhub-api/library/jwt"
)

const defaultListLimit = 10

var Instance *Blog

// Blog blog controller
type Blog struct {
	svc *service.Blog
}

func Initialize(ctx context.Context, storage service.ObjectStorage) {
	service.Initialize(ctx, storage)
	Instance = New(service.Instance)
}

// New new blog controller
func New(svc *service.Blog) *Blog {
	return &Blog{svc: svc}
}

// ListPublished public post list, newest first
func (b *Blog) ListPublished(ctx *gin.Context) {
	limit := defaultListLimit
	if v, err := strconv.Atoi(ctx.DefaultQuery("limit", "")); err == nil && v > 0 {
		limit = v
	}

	posts, err := b.svc.ListPublished(ctx.Request.Context(), limit)
	if err != nil {
		abortPostErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

// GetPost public post detail, 404 when absent
func (b *Blog) GetPost(ctx *gin.Context) {
	post, err := b.svc.GetPost(ctx.Request.Context(), ctx.Param("post"))
	if err != nil {
		abortPostErr(ctx, err)
		return
	}
	if post == nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound,
			gin.H{"error": "post not found"})
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// ListAll owner only, drafts included
func (b *Blog) ListAll(ctx *gin.Context) {
	posts, err := b.svc.ListAll(ctx.Request.Context())
	if err != nil {
		abortPostErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

// SavePost owner only. Multipart form with the post fields and an
// optional "media" file; an "id" value edits the existing post.
func (b *Blog) SavePost(ctx *gin.Context) {
	uc := new(jwt.UserClaims)
	if err := auth.Instance.GetUserClaims(ctx, uc); err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized,
			gin.H{"error": "not signed in"})
		return
	}

	published := true
	if v := ctx.PostForm("published"); v != "" {
		published, _ = strconv.ParseBool(v)
	}

	in := service.PostInput{
		ID:          ctx.PostForm("id"),
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		Content:     ctx.PostForm("content"),
		Type:        model.PostType(ctx.PostForm("type")),
		MediaType:   model.MediaType(ctx.PostForm("mediaType")),
		MediaURL:    ctx.PostForm("mediaUrl"),
		Published:   published,
		Author:      uc.DisplayName,
	}
	if in.Author == "" {
		in.Author = "Admin"
	}

	if fh, err := ctx.FormFile("media"); err == nil {
		f, err := fh.Open()
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest,
				gin.H{"error": "unreadable media upload"})
			return
		}
		defer f.Close()

		in.Media = &service.MediaUpload{
			OriginalFileName: fh.Filename,
			ContentType:      fh.Header.Get("Content-Type"),
			Size:             fh.Size,
			Content:          f,
		}
	}

	post, err := b.svc.SavePost(ctx.Request.Context(), in)
	if err != nil {
		abortPostErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// DeletePost owner only, clears the post's media folder too
func (b *Blog) DeletePost(ctx *gin.Context) {
	if err := b.svc.DeletePost(ctx.Request.Context(), ctx.Param("post")); err != nil {
		abortPostErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// abortPostErr maps a service failure onto the client response: input
// rejected by validation is the caller's fault, anything else means the
// content store or object storage failed behind us.
func abortPostErr(ctx *gin.Context, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, model.ErrInvalidPost) {
		status = http.StatusBadRequest
	}

	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
