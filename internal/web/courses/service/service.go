// Package service is the service layer of the course tree.
//
// Every nested mutation follows the same discipline: read the course
// document fresh, mutate the in-memory tree, write the whole document
// back. Last write wins at the document level.
package service

import (
	"context"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/courses/dao"
	"github.com/aahabhisheksingh/studyhub-api/internal/web/courses/model"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

var Instance *Courses

// Store is the slice of the courses dao the service depends on.
type Store interface {
	GetCourses(ctx context.Context) (map[string]*model.Course, error)
	GetCourse(ctx context.Context, courseID string) (*model.Course, error)
	SaveCourse(ctx context.Context, courseID string, fields map[string]any) error
	DeleteCourse(ctx context.Context, courseID string) error
}

// ObjectStorage is the slice of the storage client the service depends on.
type ObjectStorage interface {
	UploadNoteFile(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
	DeleteNoteFile(ctx context.Context, path string) error
}

// Courses course tree service
type Courses struct {
	logger  glog.Logger
	store   Store
	storage ObjectStorage
}

func Initialize(ctx context.Context, storage ObjectStorage) {
	dao.Initialize(ctx)
	Instance = New(log.Logger.Named("courses"), dao.Instance, storage)
}

// New new courses service
func New(logger glog.Logger, store Store, storage ObjectStorage) *Courses {
	return &Courses{
		logger:  logger,
		store:   store,
		storage: storage,
	}
}

// ListCourses returns every course keyed by id.
func (s *Courses) ListCourses(ctx context.Context) (map[string]*model.Course, error) {
	return s.store.GetCourses(ctx)
}

// GetCourse returns one course, nil when absent.
func (s *Courses) GetCourse(ctx context.Context, courseID string) (*model.Course, error) {
	return s.store.GetCourse(ctx, courseID)
}

// CreateCourse derives the course id from the name and saves an empty tree.
// A name deriving to an existing id overwrites that course's name but
// keeps its years.
func (s *Courses) CreateCourse(ctx context.Context, name string) (*model.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("course name is required")
	}

	course := &model.Course{
		ID:    DeriveCourseID(name),
		Name:  name,
		Years: map[string]model.Year{},
	}
	if course.ID == "" {
		return nil, errors.Errorf("course name %q derives an empty id", name)
	}

	existing, err := s.store.GetCourse(ctx, course.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load course")
	}
	if existing != nil && existing.Years != nil {
		course.Years = existing.Years
	}

	if err := s.store.SaveCourse(ctx, course.ID, course.ToDoc()); err != nil {
		return nil, errors.Wrap(err, "save course")
	}

	s.logger.Info("created course",
		zap.String("course", course.ID), zap.String("name", name))
	return course, nil
}

// DeleteCourse removes the whole course document and the storage objects
// of every note underneath it.
func (s *Courses) DeleteCourse(ctx context.Context, courseID string) error {
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return errors.Wrap(err, "load course")
	}

	if err := s.store.DeleteCourse(ctx, courseID); err != nil {
		return errors.Wrap(err, "delete course")
	}

	if course != nil {
		var paths []string
		for yid, year := range course.Years {
			for sid, sem := range year.Semesters {
				for subid, sub := range sem.Subjects {
					paths = append(paths, notePaths(courseID, yid, sid, subid, sub.Notes)...)
				}
			}
		}
		s.deleteNoteObjects(ctx, paths)
	}

	return nil
}

// ApplyTreeMutation runs one read-modify-write cycle against a course
// document: read fresh, apply mutate to the in-memory tree, write the
// whole document back. The intermediate tree is never shared.
func (s *Courses) ApplyTreeMutation(ctx context.Context,
	courseID string, mutate func(course *model.Course) error) (*model.Course, error) {
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "load course")
	}
	if course == nil {
		return nil, errors.WithStack(model.ErrCourseNotFound)
	}

	if course.Years == nil {
		course.Years = map[string]model.Year{}
	}

	if err = mutate(course); err != nil {
		return nil, err
	}

	if err = s.store.SaveCourse(ctx, courseID, course.ToDoc()); err != nil {
		return nil, errors.Wrap(err, "save course")
	}

	return course, nil
}

// AddYear derives the year id from the name and inserts an empty year.
// A colliding derived id overwrites the existing year.
func (s *Courses) AddYear(ctx context.Context, courseID, name string) (yearID string, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("year name is required")
	}

	if _, err = s.ApplyTreeMutation(ctx, courseID, func(course *model.Course) error {
		yearID = DeriveOrdinalID(name, len(course.Years))
		course.Years[yearID] = model.Year{
			ID:        yearID,
			Name:      name,
			Semesters: map[string]model.Semester{},
		}
		return nil
	}); err != nil {
		return "", err
	}

	s.logger.Info("added year",
		zap.String("course", courseID), zap.String("year", yearID))
	return yearID, nil
}

// RenameYear updates only the year's display name, keeping its id.
func (s *Courses) RenameYear(ctx context.Context, courseID, yearID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("year name is required")
	}

	_, err := s.ApplyTreeMutation(ctx, courseID, func(course *model.Course) error {
		year, ok := course.Years[yearID]
		if !ok {
			return errors.Errorf("year %q not found", yearID)
		}

		year.Name = name
		course.Years[yearID] = year
		return nil
	})
	return err
}

// DeleteYear removes a year and the storage objects of its notes.
func (s *Courses) DeleteYear(ctx context.Context, courseID, yearID string) error {
	var paths []string
	_, err := s.ApplyTreeMutation(ctx, courseID, func(course *model.Course) error {
		if year, ok := course.Years[yearID]; ok {
			for sid, sem := range year.Semesters {
				for subid, sub := range sem.Subjects {
					paths = append(paths, notePaths(courseID, yearID, sid, subid, sub.Notes)...)
				}
			}
		}
		delete(course.Years, yearID)
		return nil
	})
	if err != nil {
		return err
	}

	s.deleteNoteObjects(ctx, paths)
	return nil
}

// AddSemester derives the semester id from the name and inserts an empty
// semester under the given year.
func (s *Courses) AddSemester(ctx context.Context,
	courseID, yearID, name string) (semesterID string, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("semester name is required")
	}

	if _, err = s.ApplyTreeMutation(ctx, courseID, func(course *model.Course) error {
		year, ok := course.Years[yearID]
		if !ok {
			return errors.Errorf("year %q not found", yearID)
		}
		if year.Semesters == nil {
			year.Semesters = map[string]model.Semester{}
			course.Years[yearID] = year
		}

		semesterID = DeriveOrdinalID(name, len(year.Semesters))
		year.Semesters[semesterID] = model.Semester{
			ID:       semesterID,
			Name:     name,
			Subjects: map[string]model.Subject{},
		}
		return nil
	}); err != nil {
		return "", err
	}

	s.logger.Info("added semester",
		zap.String("course", courseID),
		zap.String("year", yearID),
		zap.String("semester", semesterID))
	return semesterID, nil
}

// RenameSemester updates only the semester's display name.
func (s *Courses) RenameSemester(ctx context.Context,
	courseID, yearID, semesterID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("semester name is required")
	}

	_, err := s.ApplyTreeMutation(ctx, courseID, func(course *model.Course) error {
		year, ok := course.Years[yearID]
		if !ok {
			return errors.Errorf("year %q not found", yearID)
		}
		sem, ok := year.Semesters[semesterID]
		if !ok {
			return errors.Errorf("semester %q not found", semesterID)
		}

		sem.Name = name
		year.Semesters[semesterID] = sem
		return nil
	})
	return err
}

// DeleteSemester removes a semester and the storage objects of its notes.
func (s *Courses) DeleteSemester(ctx context.Context,
	courseID, yearID, semesterID string) error {
	var paths []string
	_, err := s.ApplyTreeMutation(ctx, courseID, func(course *model.Course) error {
		year, ok := course.Years[yearID]
		if !ok {
			return nil
		}
		if sem, ok := year.Semesters[semesterID]; ok {
			for subid, sub := range sem.Subjects {
				paths = append(paths, notePaths(courseID, yearID, semesterID, subid, sub.Notes)...)
			}
		}
		delete(year.Semesters, semesterID)
		return nil
	})
	if err != nil {
		return err
	}

	s.deleteNoteObjects(ctx, paths)
	return nil
}
