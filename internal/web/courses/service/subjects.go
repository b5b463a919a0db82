package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/courses/model"
	"github.com/aahabhisheksingh/studyhub-api/library/storage"
)

// GetSubjects projects the subjects of one semester out of the course
// document. Missing ancestors yield an empty list, not an error.
func (s *Courses) GetSubjects(ctx context.Context,
	courseID, yearID, semesterID string) ([]model.Subject, error) {
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "load course")
	}
	if course == nil {
		return []model.Subject{}, nil
	}

	year, ok := course.Years[yearID]
	if !ok {
		return []model.Subject{}, nil
	}
	sem, ok := year.Semesters[semesterID]
	if !ok {
		return []model.Subject{}, nil
	}

	subjects := make([]model.Subject, 0, len(sem.Subjects))
	for _, sub := range sem.Subjects {
		subjects = append(subjects, sub)
	}

	return subjects, nil
}

// GetSubject returns one subject, nil when it or any ancestor is absent.
func (s *Courses) GetSubject(ctx context.Context,
	courseID, yearID, semesterID, subjectID string) (*model.Subject, error) {
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "load course")
	}
	if course == nil {
		return nil, nil
	}

	year, ok := course.Years[yearID]
	if !ok {
		return nil, nil
	}
	sem, ok := year.Semesters[semesterID]
	if !ok {
		return nil, nil
	}
	sub, ok := sem.Subjects[subjectID]
	if !ok {
		return nil, nil
	}

	return &sub, nil
}

// SaveSubject inserts or overwrites one subject via a full course
// read-modify-write. Year and semester containers missing along the path
// are created lazily with placeholder names; the course itself is never
// auto-created.
func (s *Courses) SaveSubject(ctx context.Context,
	courseID, yearID, semesterID, subjectID string, subject model.Subject) error {
	subject.ID = subjectID
	if subject.Links == nil {
		subject.Links = []model.StudyLink{}
	}
	if subject.Notes == nil {
		subject.Notes = []model.Note{}
	}

	_, err := s.ApplyTreeMutation(ctx, courseID, func(course *model.Course) error {
		year, ok := course.Years[yearID]
		if !ok {
			year = model.Year{
				ID:        yearID,
				Name:      fmt.Sprintf("Year %s", yearID),
				Semesters: map[string]model.Semester{},
			}
		}
		if year.Semesters == nil {
			year.Semesters = map[string]model.Semester{}
		}

		sem, ok := year.Semesters[semesterID]
		if !ok {
			sem = model.Semester{
				ID:       semesterID,
				Name:     fmt.Sprintf("Semester %s", semesterID),
				Subjects: map[string]model.Subject{},
			}
		}
		if sem.Subjects == nil {
			sem.Subjects = map[string]model.Subject{}
		}

		sem.Subjects[subjectID] = subject
		year.Semesters[semesterID] = sem
		course.Years[yearID] = year
		return nil
	})
	return err
}

// CreateSubject derives the subject id from the code and saves a fresh
// subject with empty links and notes. The stored code is upper-cased.
func (s *Courses) CreateSubject(ctx context.Context,
	courseID, yearID, semesterID, name, code, description string) (subjectID string, err error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	description = strings.TrimSpace(description)
	if name == "" || code == "" || description == "" {
		return "", errors.New("subject name, code and description are required")
	}

	subjectID = DeriveSubjectID(code)
	if err = s.SaveSubject(ctx, courseID, yearID, semesterID, subjectID, model.Subject{
		Name:        name,
		Code:        strings.ToUpper(code),
		Description: description,
		Links:       []model.StudyLink{},
		Notes:       []model.Note{},
	}); err != nil {
		return "", err
	}

	s.logger.Info("created subject",
		zap.String("course", courseID),
		zap.String("subject", subjectID))
	return subjectID, nil
}

// DeleteSubject removes the subject key and rewrites the course.
// A second call on the same id, or a call with any ancestor missing,
// is a no-op.
func (s *Courses) DeleteSubject(ctx context.Context,
	courseID, yearID, semesterID, subjectID string) error {
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return errors.Wrap(err, "load course")
	}
	if course == nil {
		return nil
	}
	year, ok := course.Years[yearID]
	if !ok {
		return nil
	}
	sem, ok := year.Semesters[semesterID]
	if !ok {
		return nil
	}

	sub, existed := sem.Subjects[subjectID]
	delete(sem.Subjects, subjectID)
	if err = s.store.SaveCourse(ctx, courseID, course.ToDoc()); err != nil {
		return errors.Wrap(err, "save course")
	}

	if existed {
		s.deleteNoteObjects(ctx,
			notePaths(courseID, yearID, semesterID, subjectID, sub.Notes))
	}
	return nil
}

// AddLink appends a study link to the subject and persists immediately.
func (s *Courses) AddLink(ctx context.Context,
	courseID, yearID, semesterID, subjectID string,
	title, linkURL string, linkType model.LinkType) (link model.StudyLink, err error) {
	title = strings.TrimSpace(title)
	linkURL = strings.TrimSpace(linkURL)
	if title == "" || linkURL == "" {
		return link, errors.New("link title and url are required")
	}
	switch linkType {
	case model.LinkTypeVideo, model.LinkTypeArticle, model.LinkTypeTutorial:
	default:
		return link, errors.Errorf("invalid link type %q", linkType)
	}

	link = model.StudyLink{
		ID:    NewLinkID(gutils.Clock.GetUTCNow()),
		Title: title,
		URL:   linkURL,
		Type:  linkType,
	}

	err = s.mutateSubject(ctx, courseID, yearID, semesterID, subjectID,
		func(sub *model.Subject) error {
			sub.Links = append(sub.Links, link)
			return nil
		})
	return link, err
}

// RemoveLink removes a study link by id. Removal is filter-by-id, so an
// unknown id leaves the subject unchanged.
func (s *Courses) RemoveLink(ctx context.Context,
	courseID, yearID, semesterID, subjectID, linkID string) error {
	return s.mutateSubject(ctx, courseID, yearID, semesterID, subjectID,
		func(sub *model.Subject) error {
			kept := sub.Links[:0]
			for _, l := range sub.Links {
				if l.ID != linkID {
					kept = append(kept, l)
				}
			}
			sub.Links = kept
			return nil
		})
}

// NoteUpload one file of an admin "upload notes" batch.
type NoteUpload struct {
	Title            string
	Type             model.NoteType
	OriginalFileName string
	ContentType      string
	Size             int64
	Content          io.Reader
}

// AddNotes uploads a batch of files and appends the resulting note
// records to the subject in one save. Files are uploaded sequentially,
// each awaited before the next starts; a failure mid-batch aborts before
// any metadata is written.
func (s *Courses) AddNotes(ctx context.Context,
	courseID, yearID, semesterID, subjectID string,
	uploads []NoteUpload) ([]model.Note, error) {
	if len(uploads) == 0 {
		return nil, errors.New("no files to upload")
	}
	for _, u := range uploads {
		if strings.TrimSpace(u.Title) == "" {
			return nil, errors.New("every note needs a title")
		}
	}

	notes := make([]model.Note, 0, len(uploads))
	for i, u := range uploads {
		now := gutils.Clock.GetUTCNow()
		path := storage.NoteObjectPath(
			courseID, yearID, semesterID, subjectID, u.OriginalFileName, now)

		fileURL, err := s.storage.UploadNoteFile(ctx, path, u.Content, u.Size, u.ContentType)
		if err != nil {
			return nil, errors.Wrapf(err, "upload %q", u.OriginalFileName)
		}

		noteType := u.Type
		if noteType == "" {
			noteType = model.NoteTypeNotes
		}

		notes = append(notes, model.Note{
			ID:               NewNoteID(now, i),
			Title:            strings.TrimSpace(u.Title),
			FileURL:          fileURL,
			FileName:         fmt.Sprintf("%d-%s", now.UnixMilli(), u.OriginalFileName),
			OriginalFileName: u.OriginalFileName,
			Size:             storage.FormatFileSize(u.Size),
			Type:             noteType,
			UploadedAt:       now,
		})
	}

	if err := s.mutateSubject(ctx, courseID, yearID, semesterID, subjectID,
		func(sub *model.Subject) error {
			sub.Notes = append(sub.Notes, notes...)
			return nil
		}); err != nil {
		return nil, err
	}

	s.logger.Info("uploaded notes",
		zap.String("subject", subjectID), zap.Int("n", len(notes)))
	return notes, nil
}

// RenameNote updates a note's title and persists immediately.
func (s *Courses) RenameNote(ctx context.Context,
	courseID, yearID, semesterID, subjectID, noteID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("note title is required")
	}

	return s.mutateSubject(ctx, courseID, yearID, semesterID, subjectID,
		func(sub *model.Subject) error {
			for i := range sub.Notes {
				if sub.Notes[i].ID == noteID {
					sub.Notes[i].Title = title
					return nil
				}
			}
			return errors.Errorf("note %q not found", noteID)
		})
}

// RemoveNote removes a note record and its backing storage object.
func (s *Courses) RemoveNote(ctx context.Context,
	courseID, yearID, semesterID, subjectID, noteID string) error {
	var removed []model.Note
	if err := s.mutateSubject(ctx, courseID, yearID, semesterID, subjectID,
		func(sub *model.Subject) error {
			kept := sub.Notes[:0]
			for _, n := range sub.Notes {
				if n.ID == noteID {
					removed = append(removed, n)
					continue
				}
				kept = append(kept, n)
			}
			sub.Notes = kept
			return nil
		}); err != nil {
		return err
	}

	s.deleteNoteObjects(ctx,
		notePaths(courseID, yearID, semesterID, subjectID, removed))
	return nil
}

// mutateSubject applies fn to one existing subject inside a tree mutation.
func (s *Courses) mutateSubject(ctx context.Context,
	courseID, yearID, semesterID, subjectID string,
	fn func(sub *model.Subject) error) error {
	_, err := s.ApplyTreeMutation(ctx, courseID, func(course *model.Course) error {
		year, ok := course.Years[yearID]
		if !ok {
			return errors.Errorf("year %q not found", yearID)
		}
		sem, ok := year.Semesters[semesterID]
		if !ok {
			return errors.Errorf("semester %q not found", semesterID)
		}
		sub, ok := sem.Subjects[subjectID]
		if !ok {
			return errors.Errorf("subject %q not found", subjectID)
		}

		if err := fn(&sub); err != nil {
			return err
		}

		sem.Subjects[subjectID] = sub
		return nil
	})
	return err
}

// notePaths rebuilds the storage paths of the given notes from their
// tree coordinates and stored storage-side file names.
func notePaths(courseID, yearID, semesterID, subjectID string, notes []model.Note) []string {
	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		if n.FileName == "" {
			continue
		}
		paths = append(paths, fmt.Sprintf("notes/%s/%s/%s/%s/%s",
			courseID, yearID, semesterID, subjectID, n.FileName))
	}
	return paths
}

// deleteNoteObjects removes the storage objects at the given paths.
// Failures are logged, not surfaced: the metadata delete already
// succeeded and a leaked object is preferable to a failed admin action.
func (s *Courses) deleteNoteObjects(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}

	var pool errgroup.Group
	for _, p := range paths {
		path := p
		pool.Go(func() error {
			if err := s.storage.DeleteNoteFile(ctx, path); err != nil {
				s.logger.Warn("delete note object",
					zap.Error(err),
					zap.String("path", path))
			}
			return nil
		})
	}
	_ = pool.Wait()
}
