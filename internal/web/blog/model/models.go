// Package model defines the blog and notice records kept in the
// content store's "blogPosts" collection.
package model

import (
	"time"
)

// PostType classifies a post on the public site.
type PostType string

const (
	PostTypeBlog    PostType = "blog"
	PostTypeNotice  PostType = "notice"
	PostTypeArticle PostType = "article"
)

// Valid reports whether t is one of the recognized post types.
func (t PostType) Valid() bool {
	switch t {
	case PostTypeBlog, PostTypeNotice, PostTypeArticle:
		return true
	}
	return false
}

// MediaType tells the reader view how to render a post's attachment.
type MediaType string

const (
	MediaTypeImage   MediaType = "image"
	MediaTypeVideo   MediaType = "video"
	MediaTypeFile    MediaType = "file"
	MediaTypeArticle MediaType = "article"
	MediaTypeNone    MediaType = "none"
)

// Valid reports whether t is one of the recognized media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypeFile, MediaTypeArticle, MediaTypeNone:
		return true
	}
	return false
}

// Post is one blog post or notice, stored as a single document keyed
// by its id. MediaURL, MediaURLs, FileURL and FileName are optional and
// must be left out of writes entirely when empty, the store does not
// accept undefined-valued fields.
type Post struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Description string    `firestore:"description" json:"description"`
	Content     string    `firestore:"content" json:"content"`
	Type        PostType  `firestore:"type" json:"type"`
	MediaType   MediaType `firestore:"mediaType" json:"mediaType"`
	MediaURL    string    `firestore:"mediaUrl,omitempty" json:"mediaUrl,omitempty"`
	MediaURLs   []string  `firestore:"mediaUrls,omitempty" json:"mediaUrls,omitempty"`
	FileURL     string    `firestore:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	FileName    string    `firestore:"fileName,omitempty" json:"fileName,omitempty"`
	Author      string    `firestore:"author" json:"author"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
	Published   bool      `firestore:"published" json:"published"`
}

// ToDoc flattens the post into the field map written to the store.
// Optional fields are included only when they carry a value.
func (p *Post) ToDoc() map[string]any {
	doc := map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"content":     p.Content,
		"type":        p.Type,
		"mediaType":   p.MediaType,
		"author":      p.Author,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
		"published":   p.Published,
	}
	if p.MediaURL != "" {
		doc["mediaUrl"] = p.MediaURL
	}
	if len(p.MediaURLs) != 0 {
		doc["mediaUrls"] = p.MediaURLs
	}
	if p.FileURL != "" {
		doc["fileUrl"] = p.FileURL
	}
	if p.FileName != "" {
		doc["fileName"] = p.FileName
	}
	return doc
}
