package statsstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals used by the admin dashboard.
type Counts struct {
	Courses          int64 `json:"totalCourses"`
	PublishedCourses int64 `json:"publishedCourses"`
	Enrollments      int64 `json:"totalEnrollments"`
	Completions      int64 `json:"completedEnrollments"`
	Students         int64 `json:"activeStudents"`
}

// FetchDashboardCounts returns the high-level counts used by dashboards.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts

	// courses
	if n, err := db.Collection("courses").CountDocuments(ctx, bson.M{}); err == nil {
		out.Courses = n
	}

	// published courses
	if n, err := db.Collection("courses").CountDocuments(ctx, bson.M{"is_published": true}); err == nil {
		out.PublishedCourses = n
	}

	// enrollments
	if n, err := db.Collection("enrollments").CountDocuments(ctx, bson.M{}); err == nil {
		out.Enrollments = n
	}

	// completions
	if n, err := db.Collection("enrollments").CountDocuments(ctx, bson.M{"status": "completed"}); err == nil {
		out.Completions = n
	}

	// distinct enrolled students
	if ids, err := db.Collection("enrollments").Distinct(ctx, "student_id", bson.M{}); err == nil {
		out.Students = int64(len(ids))
	}

	return out
}
