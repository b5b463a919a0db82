// Package dao is the data access object over the courses collection.
package dao

import (
	"context"

	fsSDK "cloud.google.com/go/firestore"
	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"google.golang.org/api/iterator"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/courses/model"
	fsDB "github.com/aahabhisheksingh/studyhub-api/library/db/firestore"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

const coursesColName = "courses"

var Instance *Courses

// Courses dao type
type Courses struct {
	logger glog.Logger
	db     *fsDB.DB
}

func Initialize(ctx context.Context) {
	model.Initialize(ctx)

	Instance = New(log.Logger.Named("courses_dao"), model.ContentDB)
}

// New create new dao
func New(logger glog.Logger, db *fsDB.DB) *Courses {
	return &Courses{
		logger: logger,
		db:     db,
	}
}

// GetCoursesCol get courses collection
func (d *Courses) GetCoursesCol() *fsSDK.CollectionRef {
	return d.db.Collection(coursesColName)
}

// GetCourses reads every course document, keyed by derived course id.
func (d *Courses) GetCourses(ctx context.Context) (map[string]*model.Course, error) {
	courses := map[string]*model.Course{}

	iter := d.GetCoursesCol().Documents(ctx)
	defer iter.Stop()
	for {
		docu, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate courses")
		}

		course := new(model.Course)
		if err = docu.DataTo(course); err != nil {
			return nil, errors.Wrapf(err, "decode course %q", docu.Ref.ID)
		}

		course.ID = docu.Ref.ID
		courses[course.ID] = course
	}

	return courses, nil
}

// GetCourse reads one course document, returning nil without error when absent.
func (d *Courses) GetCourse(ctx context.Context, courseID string) (*model.Course, error) {
	docu, err := d.GetCoursesCol().Doc(courseID).Get(ctx)
	if err != nil {
		if fsDB.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrapf(err, "get course %q", courseID)
	}

	course := new(model.Course)
	if err = docu.DataTo(course); err != nil {
		return nil, errors.Wrapf(err, "decode course %q", courseID)
	}

	course.ID = docu.Ref.ID
	return course, nil
}

// SaveCourse replaces the whole course document with the given fields.
// Callers always read the course fresh and write the complete tree back,
// so a plain Set is the only write that also drops removed map keys;
// a merge write would leave deleted years behind in the stored document.
func (d *Courses) SaveCourse(ctx context.Context, courseID string, fields map[string]any) error {
	if _, err := d.GetCoursesCol().Doc(courseID).Set(ctx, fields); err != nil {
		return errors.Wrapf(err, "save course %q", courseID)
	}

	d.logger.Debug("saved course", zap.String("course", courseID))
	return nil
}

// DeleteCourse removes the whole course document. Irreversible.
func (d *Courses) DeleteCourse(ctx context.Context, courseID string) error {
	if _, err := d.GetCoursesCol().Doc(courseID).Delete(ctx); err != nil {
		return errors.Wrapf(err, "delete course %q", courseID)
	}

	d.logger.Info("deleted course", zap.String("course", courseID))
	return nil
}
