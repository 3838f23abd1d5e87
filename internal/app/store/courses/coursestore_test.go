package coursestore_test

import (
	"errors"
	"testing"

	coursestore "github.com/edukit/coursehub/internal/app/store/courses"
	"github.com/edukit/coursehub/internal/app/system/apperr"
	"github.com/edukit/coursehub/internal/app/system/catalogsearch"
	"github.com/edukit/coursehub/internal/domain/models"
	"github.com/edukit/coursehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructorID := primitive.NewObjectID()
	course, err := store.Create(ctx, instructorID, "Pat Teacher", coursestore.NewCourse{
		Title:       "Intro to Typography",
		Description: "Letterforms from the ground up.",
		Category:    "Design",
		Level:       models.LevelBeginner,
		Price:       49.99,
		Duration:    8,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if course.IsPublished {
		t.Error("new course should start unpublished")
	}
	if course.Language != models.DefaultLanguage {
		t.Errorf("Language: got %q, want %q", course.Language, models.DefaultLanguage)
	}
	if course.Rating.Average != 0 || course.Rating.Count != 0 {
		t.Errorf("new course should have zero rating, got %+v", course.Rating)
	}
	if course.InstructorID != instructorID {
		t.Errorf("InstructorID: got %s, want %s", course.InstructorID.Hex(), instructorID.Hex())
	}

	// Verify it landed in the collection.
	count, err := db.Collection("courses").CountDocuments(ctx, bson.M{"_id": course.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 course, got %d", count)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructorID := primitive.NewObjectID()
	base := coursestore.NewCourse{
		Title:       "Valid Title",
		Description: "Valid description.",
		Category:    "Design",
		Level:       models.LevelBeginner,
		Price:       10,
		Duration:    5,
	}

	cases := []struct {
		name   string
		mutate func(*coursestore.NewCourse)
	}{
		{"missing title", func(c *coursestore.NewCourse) { c.Title = "  " }},
		{"missing description", func(c *coursestore.NewCourse) { c.Description = "" }},
		{"missing category", func(c *coursestore.NewCourse) { c.Category = "" }},
		{"bad level", func(c *coursestore.NewCourse) { c.Level = "Expert" }},
		{"negative price", func(c *coursestore.NewCourse) { c.Price = -1 }},
		{"negative duration", func(c *coursestore.NewCourse) { c.Duration = -1 }},
		{"bad material type", func(c *coursestore.NewCourse) {
			c.Materials = []models.CourseMaterial{{Title: "m", Type: "podcast"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := store.Create(ctx, instructorID, "Pat Teacher", in)
			if !apperr.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestStore_Create_SanitizesHTML(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course, err := store.Create(ctx, primitive.NewObjectID(), "Pat Teacher", coursestore.NewCourse{
		Title:       `Safe <script>alert("x")</script>Title`,
		Description: `<p>Fine</p><script>alert("x")</script>`,
		Category:    "Design",
		Level:       models.LevelBeginner,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := course.Title; got != "Safe Title" {
		t.Errorf("Title: got %q, want script stripped", got)
	}
	if got := course.Description; got != "<p>Fine</p>" {
		t.Errorf("Description: got %q, want script stripped", got)
	}
}

func TestStore_Create_AssignsMaterialIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course, err := store.Create(ctx, primitive.NewObjectID(), "Pat Teacher", coursestore.NewCourse{
		Title:       "With Materials",
		Description: "Has lessons.",
		Category:    "Design",
		Level:       models.LevelBeginner,
		Materials: []models.CourseMaterial{
			{Title: "Welcome", Type: models.MaterialVideo, Order: 1},
			{Title: "Reading", Type: models.MaterialDocument, Order: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(course.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(course.Materials))
	}
	for _, m := range course.Materials {
		if m.ID == "" {
			t.Errorf("material %q has no ID", m.Title)
		}
	}
	if course.Materials[0].ID == course.Materials[1].ID {
		t.Error("material IDs should be unique")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ownerID := primitive.NewObjectID()
	course := fixtures.CreateCourse(ctx, "Old Title", ownerID)

	newTitle := "New Title"
	newPrice := 79.0
	updated, err := store.Update(ctx, course.ID, ownerID, coursestore.Patch{
		Title: &newTitle,
		Price: &newPrice,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("Title: got %q, want %q", updated.Title, newTitle)
	}
	if updated.Price != newPrice {
		t.Errorf("Price: got %v, want %v", updated.Price, newPrice)
	}
	// Untouched fields survive.
	if updated.Category != course.Category {
		t.Errorf("Category changed: got %q, want %q", updated.Category, course.Category)
	}
	if updated.InstructorID != ownerID {
		t.Errorf("InstructorID changed: got %s", updated.InstructorID.Hex())
	}
}

func TestStore_Update_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fixtures.CreateCourse(ctx, "Owned Course", primitive.NewObjectID())

	newTitle := "Hijacked"
	_, err := store.Update(ctx, course.ID, primitive.NewObjectID(), coursestore.Patch{Title: &newTitle})
	if !errors.Is(err, apperr.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	// The rejected update must not have touched the document.
	after, err := store.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if after.Title != "Owned Course" {
		t.Errorf("title changed by rejected update: got %q", after.Title)
	}
}

func TestStore_Update_InvalidPatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ownerID := primitive.NewObjectID()
	course := fixtures.CreateCourse(ctx, "Course", ownerID)

	badPrice := -5.0
	_, err := store.Update(ctx, course.ID, ownerID, coursestore.Patch{Price: &badPrice})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestStore_TogglePublish(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ownerID := primitive.NewObjectID()
	course := fixtures.CreateCourse(ctx, "Toggle Me", ownerID, testutil.Unpublished())

	updated, err := store.TogglePublish(ctx, course.ID, ownerID)
	if err != nil {
		t.Fatalf("TogglePublish failed: %v", err)
	}
	if !updated.IsPublished {
		t.Error("expected course to be published after first toggle")
	}

	updated, err = store.TogglePublish(ctx, course.ID, ownerID)
	if err != nil {
		t.Fatalf("second TogglePublish failed: %v", err)
	}
	if updated.IsPublished {
		t.Error("expected course to be unpublished after second toggle")
	}
}

func TestStore_TogglePublish_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fixtures.CreateCourse(ctx, "Owned Course", primitive.NewObjectID())

	_, err := store.TogglePublish(ctx, course.ID, primitive.NewObjectID())
	if !errors.Is(err, apperr.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}

func TestStore_Delete_Cascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ownerID := primitive.NewObjectID()
	course := fixtures.CreateCourse(ctx, "Doomed Course", ownerID)
	other := fixtures.CreateCourse(ctx, "Surviving Course", ownerID)

	fixtures.CreateEnrollment(ctx, primitive.NewObjectID(), course.ID)
	fixtures.CreateEnrollment(ctx, primitive.NewObjectID(), course.ID)
	keep := fixtures.CreateEnrollment(ctx, primitive.NewObjectID(), other.ID)

	if err := store.Delete(ctx, course.ID, ownerID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, course.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected deleted course to be gone, got %v", err)
	}

	count, err := db.Collection("enrollments").CountDocuments(ctx, bson.M{"course_id": course.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 enrollments for deleted course, got %d", count)
	}

	// Enrollments for other courses are untouched.
	count, err = db.Collection("enrollments").CountDocuments(ctx, bson.M{"_id": keep.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Error("enrollment for surviving course was deleted")
	}
}

func TestStore_Delete_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fixtures.CreateCourse(ctx, "Owned Course", primitive.NewObjectID())

	err := store.Delete(ctx, course.ID, primitive.NewObjectID())
	if !errors.Is(err, apperr.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if _, err := store.GetByID(ctx, course.ID); err != nil {
		t.Errorf("course should still exist, got %v", err)
	}
}

func TestStore_ListByInstructor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mine := primitive.NewObjectID()
	theirs := primitive.NewObjectID()
	fixtures.CreateCourse(ctx, "Mine A", mine)
	fixtures.CreateCourse(ctx, "Mine B", mine, testutil.Unpublished())
	fixtures.CreateCourse(ctx, "Theirs", theirs)

	courses, err := store.ListByInstructor(ctx, mine)
	if err != nil {
		t.Fatalf("ListByInstructor failed: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	for _, c := range courses {
		if c.InstructorID != mine {
			t.Errorf("got course owned by %s", c.InstructorID.Hex())
		}
	}
}

func TestStore_Search_PublishedOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructorID := primitive.NewObjectID()
	published := fixtures.CreateCourse(ctx, "Visible Course", instructorID)
	fixtures.CreateCourse(ctx, "Hidden Course", instructorID, testutil.Unpublished())

	courses, err := store.Search(ctx, catalogsearch.Criteria{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}
	if courses[0].ID != published.ID {
		t.Errorf("got course %s, want %s", courses[0].ID.Hex(), published.ID.Hex())
	}
}

func TestStore_Search_PriceSort(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructorID := primitive.NewObjectID()
	fixtures.CreateCourse(ctx, "Mid", instructorID, testutil.WithPrice(75))
	fixtures.CreateCourse(ctx, "Cheap", instructorID, testutil.WithPrice(10))
	fixtures.CreateCourse(ctx, "Pricey", instructorID, testutil.WithPrice(250))

	courses, err := store.Search(ctx, catalogsearch.Criteria{Sort: catalogsearch.SortPriceLow})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("expected 3 courses, got %d", len(courses))
	}
	want := []string{"Cheap", "Mid", "Pricey"}
	for i, title := range want {
		if courses[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, courses[i].Title, title)
		}
	}
}

func TestStore_Search_PriceRangeBoundaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructorID := primitive.NewObjectID()
	fixtures.CreateCourse(ctx, "At Fifty", instructorID, testutil.WithPrice(50.00))
	fixtures.CreateCourse(ctx, "Just Over", instructorID, testutil.WithPrice(50.01))

	// 50.00 is the inclusive upper bound of $0-$50; 50.01 falls in the
	// next bucket.
	under, err := store.Search(ctx, catalogsearch.Criteria{PriceRange: catalogsearch.PriceUnder50})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(under) != 1 || under[0].Title != "At Fifty" {
		t.Errorf("%s: got %d courses, want only %q", catalogsearch.PriceUnder50, len(under), "At Fifty")
	}

	over, err := store.Search(ctx, catalogsearch.Criteria{PriceRange: catalogsearch.Price50To100})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(over) != 1 || over[0].Title != "Just Over" {
		t.Errorf("%s: got %d courses, want only %q", catalogsearch.Price50To100, len(over), "Just Over")
	}
}

func TestStore_Search_NoMatchesIsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := coursestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	courses, err := store.Search(ctx, catalogsearch.Criteria{Text: "nothing matches this"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if courses == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(courses) != 0 {
		t.Errorf("expected 0 courses, got %d", len(courses))
	}
}
