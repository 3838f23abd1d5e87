// Package studentcourses provides the joined view a student sees on
// their learning dashboard: each of their enrollments together with the
// course it belongs to.
//
// Enrollments reference courses by course_id. The join is done with a
// $lookup aggregation so one round trip returns both sides; enrollments
// whose course has since been cascade-deleted never appear, because the
// inner $unwind drops rows with no course match.
package studentcourses

import (
	"context"

	"github.com/edukit/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StudentCourse is one row of the dashboard view: the enrollment plus
// the joined course document.
type StudentCourse struct {
	Enrollment models.Enrollment `bson:"enrollment" json:"enrollment"`
	Course     models.Course     `bson:"course" json:"course"`
}

// ListForStudent returns the student's enrollments joined with their
// courses, most recently enrolled first.
func ListForStudent(ctx context.Context, db *mongo.Database, studentID primitive.ObjectID) ([]StudentCourse, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"student_id": studentID}}},
		// Join to courses collection
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "courses",
			"localField":   "course_id",
			"foreignField": "_id",
			"as":           "crs",
		}}},
		// Inner join: an enrollment without a course (mid-cascade) is dropped
		bson.D{{Key: "$unwind", Value: "$crs"}},
		bson.D{{Key: "$project", Value: bson.M{
			"enrollment": "$$ROOT",
			"course":     "$crs",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"enrollment.crs": 0,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "enrollment.enrollment_date", Value: -1},
			{Key: "enrollment._id", Value: -1},
		}}},
	}

	cur, err := db.Collection("enrollments").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []StudentCourse{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
