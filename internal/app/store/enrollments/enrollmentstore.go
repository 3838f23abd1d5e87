// internal/app/store/enrollments/enrollmentstore.go
package enrollmentstore

// An enrollment is the join record between a student and a course. The
// unique index on (student_id, course_id) is what makes double-enrolls
// impossible, even under concurrent requests: the second insert always
// fails with a duplicate key error, which we surface as
// ErrDuplicateEnrollment.

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/edukit/coursehub/internal/app/system/apperr"
	"github.com/edukit/coursehub/internal/app/system/progress"
	"github.com/edukit/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c       *mongo.Collection
	courses *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("enrollments"),
		courses: db.Collection("courses"),
	}
}

// Enroll records a student joining a course. The course must exist;
// enrolling twice in the same course returns ErrDuplicateEnrollment.
func (s *Store) Enroll(ctx context.Context, studentID, courseID primitive.ObjectID) (models.Enrollment, error) {
	// Course must exist. Publish state is not checked here: direct
	// enrollment into an unpublished course is allowed.
	if err := s.courses.FindOne(ctx, bson.M{"_id": courseID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Enrollment{}, apperr.ErrNotFound
		}
		return models.Enrollment{}, err
	}

	now := time.Now().UTC()
	enr := models.Enrollment{
		ID:             primitive.NewObjectID(),
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: now,
		Progress:       0,
		Status:         models.StatusEnrolled,
		LastAccessed:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.c.InsertOne(ctx, enr); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Enrollment{}, apperr.ErrDuplicateEnrollment
		}
		return models.Enrollment{}, err
	}
	return enr, nil
}

// GetByID returns an enrollment by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Enrollment, error) {
	var enr models.Enrollment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&enr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Enrollment{}, apperr.ErrNotFound
		}
		return models.Enrollment{}, err
	}
	return enr, nil
}

// UpdateProgress advances the caller's own enrollment. Status follows
// progress (see the progress package); a completed enrollment never
// reverts and its completion date is never re-stamped. Every update
// touches last_accessed.
func (s *Store) UpdateProgress(ctx context.Context, id, callerID primitive.ObjectID, newProgress int) (models.Enrollment, error) {
	enr, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Enrollment{}, err
	}
	if enr.StudentID != callerID {
		return models.Enrollment{}, apperr.ErrNotOwner
	}

	now := time.Now().UTC()
	res, err := progress.Apply(enr.Status, enr.CompletionDate, newProgress, now)
	if err != nil {
		return models.Enrollment{}, err
	}

	set := bson.M{
		"progress":      newProgress,
		"status":        res.Status,
		"last_accessed": now,
		"updated_at":    now,
	}
	if res.CompletionDate != nil {
		set["completion_date"] = *res.CompletionDate
	}

	var updated models.Enrollment
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "student_id": callerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// The course (and this enrollment with it) was deleted
			// between the read and the write.
			return models.Enrollment{}, apperr.ErrNotFound
		}
		return models.Enrollment{}, err
	}
	return updated, nil
}

// ListByStudent returns all of a student's enrollments, newest first.
func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Enrollment, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"student_id": studentID},
		options.Find().SetSort(bson.D{{Key: "enrollment_date", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	enrollments := []models.Enrollment{}
	if err := cur.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// CountByCourse returns the number of students enrolled in a course.
func (s *Store) CountByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"course_id": courseID})
}

// CountPerCourse returns enrollment counts keyed by course ID for the
// given courses. Courses with no enrollments are absent from the map.
func (s *Store) CountPerCourse(ctx context.Context, courseIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"course_id": bson.M{"$in": courseIDs}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$course_id", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		CourseID primitive.ObjectID `bson:"_id"`
		Count    int64              `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CourseID] = row.Count
	}
	return counts, nil
}

// StudentIDs returns the roster of a course: the IDs of every enrolled
// student, derived from the enrollments collection.
func (s *Store) StudentIDs(ctx context.Context, courseID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"course_id": courseID},
		options.Find().
			SetProjection(bson.M{"student_id": 1}).
			SetSort(bson.D{{Key: "enrollment_date", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		StudentID primitive.ObjectID `bson:"student_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.StudentID)
	}
	return ids, nil
}

// DeleteByCourse removes every enrollment for a course and reports how
// many were deleted. Used by the course delete cascade.
func (s *Store) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
