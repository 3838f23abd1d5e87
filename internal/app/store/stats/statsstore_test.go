package statsstore_test

import (
	"testing"

	statsstore "github.com/edukit/coursehub/internal/app/store/stats"
	"github.com/edukit/coursehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFetchDashboardCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructorID := primitive.NewObjectID()
	published := fixtures.CreateCourse(ctx, "Published", instructorID)
	fixtures.CreateCourse(ctx, "Draft", instructorID, testutil.Unpublished())

	// Two students; one enrolled twice, one completion.
	s1 := primitive.NewObjectID()
	s2 := primitive.NewObjectID()
	fixtures.CreateEnrollment(ctx, s1, published.ID)
	done := fixtures.CreateEnrollment(ctx, s2, published.ID)
	if _, err := db.Collection("enrollments").UpdateByID(ctx, done.ID,
		bson.M{"$set": bson.M{"status": "completed", "progress": 100}}); err != nil {
		t.Fatalf("failed to mark enrollment completed: %v", err)
	}

	counts := statsstore.FetchDashboardCounts(ctx, db)

	if counts.Courses != 2 {
		t.Errorf("Courses: got %d, want 2", counts.Courses)
	}
	if counts.PublishedCourses != 1 {
		t.Errorf("PublishedCourses: got %d, want 1", counts.PublishedCourses)
	}
	if counts.Enrollments != 2 {
		t.Errorf("Enrollments: got %d, want 2", counts.Enrollments)
	}
	if counts.Completions != 1 {
		t.Errorf("Completions: got %d, want 1", counts.Completions)
	}
	if counts.Students != 2 {
		t.Errorf("Students: got %d, want 2", counts.Students)
	}
}

func TestFetchDashboardCounts_EmptyDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	counts := statsstore.FetchDashboardCounts(ctx, db)
	if counts != (statsstore.Counts{}) {
		t.Errorf("expected zero counts, got %+v", counts)
	}
}
