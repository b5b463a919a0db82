// Package model contains the course tree stored one document per course.
package model

import (
	"time"
)

// LinkType classifies a study link.
type LinkType string

const (
	LinkTypeVideo    LinkType = "video"
	LinkTypeArticle  LinkType = "article"
	LinkTypeTutorial LinkType = "tutorial"
)

// NoteType classifies a downloadable file attached to a subject.
type NoteType string

const (
	NoteTypeNotes NoteType = "notes"
	NoteTypeBook  NoteType = "book"
)

// Course is the sole unit of storage granularity: the whole
// course → year → semester → subject tree lives in one document,
// and every nested change rewrites the document.
type Course struct {
	// ID derived from the name, unique among courses
	ID string `firestore:"id" json:"id"`
	// Name display name as entered by the admin
	Name string `firestore:"name" json:"name"`
	// Years keyed by derived year id
	Years map[string]Year `firestore:"years" json:"years"`
}

// Year one study year inside a course
type Year struct {
	ID        string              `firestore:"id" json:"id"`
	Name      string              `firestore:"name" json:"name"`
	Semesters map[string]Semester `firestore:"semesters" json:"semesters"`
}

// Semester one semester inside a year
type Semester struct {
	ID       string             `firestore:"id" json:"id"`
	Name     string             `firestore:"name" json:"name"`
	Subjects map[string]Subject `firestore:"subjects" json:"subjects"`
}

// Subject one subject with its study links and downloadable notes
type Subject struct {
	ID          string      `firestore:"id" json:"id"`
	Name        string      `firestore:"name" json:"name"`
	Code        string      `firestore:"code" json:"code"`
	Description string      `firestore:"description" json:"description"`
	Links       []StudyLink `firestore:"links" json:"links"`
	Notes       []Note      `firestore:"notes" json:"notes"`
}

// StudyLink an external URL reference attached to a subject
type StudyLink struct {
	// ID epoch-millis timestamp string assigned at creation
	ID    string   `firestore:"id" json:"id"`
	Title string   `firestore:"title" json:"title"`
	URL   string   `firestore:"url" json:"url"`
	Type  LinkType `firestore:"type" json:"type"`
}

// Note a downloadable file attached to a subject
type Note struct {
	ID    string `firestore:"id" json:"id"`
	Title string `firestore:"title" json:"title"`
	// FileURL durable download URL in object storage
	FileURL string `firestore:"fileUrl" json:"fileUrl"`
	// FileName storage-side name, timestamp-prefixed
	FileName string `firestore:"fileName" json:"fileName"`
	// OriginalFileName the name of the file as uploaded
	OriginalFileName string `firestore:"originalFileName" json:"originalFileName"`
	// Size human readable, e.g. "2.34 MB"
	Size       string    `firestore:"size" json:"size"`
	Type       NoteType  `firestore:"type" json:"type"`
	UploadedAt time.Time `firestore:"uploadedAt" json:"uploadedAt"`
}

// ToDoc converts the course to the document fields written to the store.
// Callers must pass complete subtrees they intend to keep: the store
// merges at the top-level field granularity only.
func (c *Course) ToDoc() map[string]any {
	years := c.Years
	if years == nil {
		years = map[string]Year{}
	}

	return map[string]any{
		"id":    c.ID,
		"name":  c.Name,
		"years": years,
	}
}
