// Package controller exposes the course tree over REST: public reads
// plus the owner-only mutation surface.
package controller

import (
	"context"
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/courses/model"
	"github.com/aahabhisheksingh/studyhub-api/internal/web/courses/service"
)

var Instance *Courses

// Courses course tree controller
type Courses struct {
	svc *service.Courses
}

func Initialize(ctx context.Context, storage service.ObjectStorage) {
	service.Initialize(ctx, storage)
	Instance = New(service.Instance)
}

// New new courses controller
func New(svc *service.Courses) *Courses {
	return &Courses{svc: svc}
}

// ListCourses public course list
func (c *Courses) ListCourses(ctx *gin.Context) {
	courses, err := c.svc.ListCourses(ctx.Request.Context())
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// GetCourse public course tree, 404 when absent
func (c *Courses) GetCourse(ctx *gin.Context) {
	course, err := c.svc.GetCourse(ctx.Request.Context(), ctx.Param("course"))
	if err != nil {
		abortErr(ctx, err)
		return
	}
	if course == nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound,
			gin.H{"error": "course not found"})
		return
	}

	ctx.JSON(http.StatusOK, course)
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCourse owner only
func (c *Courses) CreateCourse(ctx *gin.Context) {
	req := new(nameRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "name is required")
		return
	}

	course, err := c.svc.CreateCourse(ctx.Request.Context(), req.Name)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse owner only, removes the tree and its stored notes
func (c *Courses) DeleteCourse(ctx *gin.Context) {
	if err := c.svc.DeleteCourse(ctx.Request.Context(), ctx.Param("course")); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// AddYear owner only
func (c *Courses) AddYear(ctx *gin.Context) {
	req := new(nameRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "name is required")
		return
	}

	yearID, err := c.svc.AddYear(ctx.Request.Context(), ctx.Param("course"), req.Name)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": yearID})
}

// RenameYear owner only
func (c *Courses) RenameYear(ctx *gin.Context) {
	req := new(nameRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "name is required")
		return
	}

	if err := c.svc.RenameYear(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), req.Name); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteYear owner only
func (c *Courses) DeleteYear(ctx *gin.Context) {
	if err := c.svc.DeleteYear(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year")); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// AddSemester owner only
func (c *Courses) AddSemester(ctx *gin.Context) {
	req := new(nameRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "name is required")
		return
	}

	semID, err := c.svc.AddSemester(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), req.Name)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": semID})
}

// RenameSemester owner only
func (c *Courses) RenameSemester(ctx *gin.Context) {
	req := new(nameRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "name is required")
		return
	}

	if err := c.svc.RenameSemester(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		req.Name); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteSemester owner only
func (c *Courses) DeleteSemester(ctx *gin.Context) {
	if err := c.svc.DeleteSemester(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester")); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func abortBadRequest(ctx *gin.Context, msg string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// abortErr maps service failures onto HTTP statuses: a missing course
// is 404, anything else is a plain 500 with the message passed through.
func abortErr(ctx *gin.Context, err error) {
	if errors.Is(err, model.ErrCourseNotFound) {
		ctx.AbortWithStatusJSON(http.StatusNotFound,
			gin.H{"error": "course not found"})
		return
	}

	ctx.AbortWithStatusJSON(http.StatusInternalServerError,
		gin.H{"error": err.Error()})
}
