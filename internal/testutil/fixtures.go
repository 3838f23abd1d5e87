package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/edukit/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CourseOpt mutates a course fixture before it is inserted.
type CourseOpt func(*models.Course)

// WithPrice sets the fixture course's price.
func WithPrice(p float64) CourseOpt {
	return func(c *models.Course) { c.Price = p }
}

// WithCategory sets the fixture course's category.
func WithCategory(cat string) CourseOpt {
	return func(c *models.Course) {
		c.Category = cat
		c.CategoryCI = text.Fold(cat)
	}
}

// WithLevel sets the fixture course's level.
func WithLevel(level string) CourseOpt {
	return func(c *models.Course) { c.Level = level }
}

// WithRating sets the fixture course's aggregate rating.
func WithRating(avg float64, count int64) CourseOpt {
	return func(c *models.Course) { c.Rating = models.Rating{Average: avg, Count: count} }
}

// WithCreatedAt pins the fixture course's creation timestamp.
func WithCreatedAt(ts time.Time) CourseOpt {
	return func(c *models.Course) {
		c.CreatedAt = ts
		c.UpdatedAt = ts
	}
}

// Unpublished marks the fixture course as not published.
func Unpublished() CourseOpt {
	return func(c *models.Course) { c.IsPublished = false }
}

// CreateCourse inserts a published test course owned by instructorID and
// returns it. Defaults are a $100 Beginner "Design" course; override with
// opts.
func (f *Fixtures) CreateCourse(ctx context.Context, title string, instructorID primitive.ObjectID, opts ...CourseOpt) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:             primitive.NewObjectID(),
		Title:          title,
		TitleCI:        text.Fold(title),
		Description:    "A test course about " + title,
		Category:       "Design",
		CategoryCI:     text.Fold("Design"),
		Level:          models.LevelBeginner,
		Price:          100,
		Duration:       10,
		Language:       models.DefaultLanguage,
		InstructorID:   instructorID,
		InstructorName: "Test Teacher",
		IsPublished:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(&course)
	}

	if _, err := f.db.Collection("courses").InsertOne(ctx, course); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}
	return course
}

// CreateEnrollment inserts an enrollment fixture directly, bypassing the
// store. Status defaults to enrolled with zero progress.
func (f *Fixtures) CreateEnrollment(ctx context.Context, studentID, courseID primitive.ObjectID) models.Enrollment {
	f.t.Helper()

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
	if _, err := f.db.Collection("enrollments").InsertOne(ctx, enr); err != nil {
		f.t.Fatalf("failed to create test enrollment: %v", err)
	}
	return enr
}
