package controller

import (
	"mime/multipart"
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/courses/model"
	"github.com/aahabhisheksingh/studyhub-api/internal/web/courses/service"
)

// ListSubjects public subject list for a semester. Missing ancestors
// yield an empty list, not an error.
func (c *Courses) ListSubjects(ctx *gin.Context) {
	subjects, err := c.svc.GetSubjects(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"))
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subjects)
}

// GetSubject public subject detail, 404 when absent
func (c *Courses) GetSubject(ctx *gin.Context) {
	subject, err := c.svc.GetSubject(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		ctx.Param("subject"))
	if err != nil {
		abortErr(ctx, err)
		return
	}
	if subject == nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound,
			gin.H{"error": "subject not found"})
		return
	}

	ctx.JSON(http.StatusOK, subject)
}

type subjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateSubject owner only
func (c *Courses) CreateSubject(ctx *gin.Context) {
	req := new(subjectRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "name, code and description are required")
		return
	}

	subjectID, err := c.svc.CreateSubject(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		req.Name, req.Code, req.Description)
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": subjectID})
}

// UpdateSubject owner only: rewrites name, code and description while
// keeping the subject's links and notes.
func (c *Courses) UpdateSubject(ctx *gin.Context) {
	req := new(subjectRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "name, code and description are required")
		return
	}

	courseID, yearID := ctx.Param("course"), ctx.Param("year")
	semesterID, subjectID := ctx.Param("semester"), ctx.Param("subject")

	subject, err := c.svc.GetSubject(ctx.Request.Context(),
		courseID, yearID, semesterID, subjectID)
	if err != nil {
		abortErr(ctx, err)
		return
	}
	if subject == nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound,
			gin.H{"error": "subject not found"})
		return
	}

	subject.Name = req.Name
	subject.Code = req.Code
	subject.Description = req.Description
	if err = c.svc.SaveSubject(ctx.Request.Context(),
		courseID, yearID, semesterID, subjectID, *subject); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteSubject owner only, removes the subject and its stored notes
func (c *Courses) DeleteSubject(ctx *gin.Context) {
	if err := c.svc.DeleteSubject(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		ctx.Param("subject")); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

type linkRequest struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required"`
	Type  string `json:"type" binding:"required"`
}

// AddLink owner only
func (c *Courses) AddLink(ctx *gin.Context) {
	req := new(linkRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "title, url and type are required")
		return
	}

	link, err := c.svc.AddLink(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		ctx.Param("subject"),
		req.Title, req.URL, model.LinkType(req.Type))
	if err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, link)
}

// RemoveLink owner only
func (c *Courses) RemoveLink(ctx *gin.Context) {
	if err := c.svc.RemoveLink(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		ctx.Param("subject"), ctx.Param("link")); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// UploadNotes owner only. Multipart form: one "files" part per upload,
// with parallel "titles" and optional "types" values.
func (c *Courses) UploadNotes(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		abortBadRequest(ctx, "multipart form expected")
		return
	}

	files := form.File["files"]
	titles := form.Value["titles"]
	types := form.Value["types"]
	if len(files) == 0 {
		abortBadRequest(ctx, "no files to upload")
		return
	}
	if len(titles) != len(files) {
		abortBadRequest(ctx, "every file needs a title")
		return
	}

	uploads := make([]service.NoteUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			abortBadRequest(ctx, "unreadable upload "+fh.Filename)
			return
		}
		opened = append(opened, f)

		noteType := model.NoteTypeNotes
		if i < len(types) && types[i] != "" {
			noteType = model.NoteType(types[i])
		}
		uploads = append(uploads, service.NoteUpload{
			Title:            titles[i],
			Type:             noteType,
			OriginalFileName: fh.Filename,
			ContentType:      fh.Header.Get("Content-Type"),
			Size:             fh.Size,
			Content:          f,
		})
	}

	notes, err := c.svc.AddNotes(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		ctx.Param("subject"), uploads)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			abortErr(ctx, err)
			return
		}

		ctx.AbortWithStatusJSON(http.StatusBadGateway,
			gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, notes)
}

type renameNoteRequest struct {
	Title string `json:"title" binding:"required"`
}

// RenameNote owner only
func (c *Courses) RenameNote(ctx *gin.Context) {
	req := new(renameNoteRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		abortBadRequest(ctx, "title is required")
		return
	}

	if err := c.svc.RenameNote(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		ctx.Param("subject"), ctx.Param("note"), req.Title); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// RemoveNote owner only, removes the record and its stored file
func (c *Courses) RemoveNote(ctx *gin.Context) {
	if err := c.svc.RemoveNote(ctx.Request.Context(),
		ctx.Param("course"), ctx.Param("year"), ctx.Param("semester"),
		ctx.Param("subject"), ctx.Param("note")); err != nil {
		abortErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
