// internal/app/store/courses/coursestore.go
package coursestore

// Terminology: Course Identifiers
//   - CourseID / courseID / course_id: the MongoDB ObjectID (_id) of a course
//   - InstructorID / instructor_id: the ObjectID of the owning teacher
//
// The enrolled-student roster is never stored on the course document; it
// is derived from the enrollments collection (see the enrollments store).

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/edukit/coursehub/internal/app/system/apperr"
	"github.com/edukit/coursehub/internal/app/system/catalogsearch"
	"github.com/edukit/coursehub/internal/app/system/htmlsanitize"
	"github.com/edukit/coursehub/internal/app/system/txn"
	"github.com/edukit/coursehub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	c           *mongo.Collection
	enrollments *mongo.Collection
	db          *mongo.Database
	log         *zap.Logger
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{
		c:           db.Collection("courses"),
		enrollments: db.Collection("enrollments"),
		db:          db,
		log:         log,
	}
}

// NewCourse carries the caller-supplied fields for Create.
type NewCourse struct {
	Title       string
	Description string
	Category    string
	Level       string
	Price       float64
	Duration    int
	Language    string
	Thumbnail   string
	Tags        []string
	Materials   []models.CourseMaterial
}

// Create inserts a new course owned by the instructor. Courses start
// unpublished with a zero rating; the instructor name is captured as-is
// and never auto-synced later.
func (s *Store) Create(ctx context.Context, instructorID primitive.ObjectID, instructorName string, in NewCourse) (models.Course, error) {
	if err := validateFields(in.Title, in.Description, in.Category, in.Level, in.Price, in.Duration, in.Materials); err != nil {
		return models.Course{}, err
	}

	now := time.Now().UTC()
	course := models.Course{
		ID:             primitive.NewObjectID(),
		Title:          htmlsanitize.StrictSanitize(strings.TrimSpace(in.Title)),
		Description:    htmlsanitize.Sanitize(in.Description),
		Category:       htmlsanitize.StrictSanitize(strings.TrimSpace(in.Category)),
		Level:          in.Level,
		Price:          in.Price,
		Duration:       in.Duration,
		Language:       in.Language,
		InstructorID:   instructorID,
		InstructorName: instructorName,
		Thumbnail:      in.Thumbnail,
		Tags:           sanitizeTags(in.Tags),
		Materials:      withMaterialIDs(in.Materials),
		Rating:         models.Rating{},
		IsPublished:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	course.TitleCI = text.Fold(course.Title)
	course.CategoryCI = text.Fold(course.Category)
	if course.Language == "" {
		course.Language = models.DefaultLanguage
	}

	if _, err := s.c.InsertOne(ctx, course); err != nil {
		if wafflemongo.IsDup(err) {
			// Only _id is unique on courses; a collision here is a retry
			// of the same insert.
			return course, nil
		}
		return models.Course{}, err
	}
	return course, nil
}

// GetByID returns a course by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Course{}, apperr.ErrNotFound
		}
		return models.Course{}, err
	}
	return course, nil
}

// Patch carries optional field updates. Nil means "leave unchanged".
// Instructor, rating, and publish state are deliberately absent: the
// first two are never caller-mutable, the last has its own operation.
type Patch struct {
	Title       *string
	Description *string
	Category    *string
	Level       *string
	Price       *float64
	Duration    *int
	Language    *string
	Thumbnail   *string
	Tags        *[]string
	Materials   *[]models.CourseMaterial
}

// Update applies a patch to the caller's own course. The write is a
// single conditional operation keyed on (id, instructor), so it can
// never partially interleave with a concurrent delete: either the course
// is still there and the update lands, or it is gone and the caller gets
// ErrNotFound.
func (s *Store) Update(ctx context.Context, id, callerID primitive.ObjectID, p Patch) (models.Course, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Course{}, err
	}
	if existing.InstructorID != callerID {
		return models.Course{}, apperr.ErrNotOwner
	}

	set := bson.M{"updated_at": time.Now().UTC()}

	if p.Title != nil {
		title := htmlsanitize.StrictSanitize(strings.TrimSpace(*p.Title))
		if title == "" {
			return models.Course{}, apperr.Validationf("title is required")
		}
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if p.Description != nil {
		desc := htmlsanitize.Sanitize(*p.Description)
		if strings.TrimSpace(desc) == "" {
			return models.Course{}, apperr.Validationf("description is required")
		}
		set["description"] = desc
	}
	if p.Category != nil {
		cat := htmlsanitize.StrictSanitize(strings.TrimSpace(*p.Category))
		if cat == "" {
			return models.Course{}, apperr.Validationf("category is required")
		}
		set["category"] = cat
		set["category_ci"] = text.Fold(cat)
	}
	if p.Level != nil {
		if !models.ValidLevel(*p.Level) {
			return models.Course{}, apperr.Validationf("level must be Beginner, Intermediate, Advanced, or All Levels")
		}
		set["level"] = *p.Level
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return models.Course{}, apperr.Validationf("price must be >= 0")
		}
		set["price"] = *p.Price
	}
	if p.Duration != nil {
		if *p.Duration < 0 {
			return models.Course{}, apperr.Validationf("duration must be >= 0")
		}
		set["duration"] = *p.Duration
	}
	if p.Language != nil {
		lang := strings.TrimSpace(*p.Language)
		if lang == "" {
			lang = models.DefaultLanguage
		}
		set["language"] = lang
	}
	if p.Thumbnail != nil {
		set["thumbnail"] = *p.Thumbnail
	}
	if p.Tags != nil {
		set["tags"] = sanitizeTags(*p.Tags)
	}
	if p.Materials != nil {
		for _, m := range *p.Materials {
			if !models.ValidMaterialType(m.Type) {
				return models.Course{}, apperr.Validationf("material type %q is not valid", m.Type)
			}
		}
		set["materials"] = withMaterialIDs(*p.Materials)
	}

	var updated models.Course
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "instructor_id": callerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Deleted between the ownership check and the write.
			return models.Course{}, apperr.ErrNotFound
		}
		return models.Course{}, err
	}
	return updated, nil
}

// TogglePublish flips the course's published flag in one atomic write.
func (s *Store) TogglePublish(ctx context.Context, id, callerID primitive.ObjectID) (models.Course, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Course{}, err
	}
	if existing.InstructorID != callerID {
		return models.Course{}, apperr.ErrNotOwner
	}

	// Pipeline update so the flip is atomic even under concurrent toggles.
	var updated models.Course
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "instructor_id": callerID},
		mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.M{
				"is_published": bson.M{"$not": "$is_published"},
				"updated_at":   time.Now().UTC(),
			}}},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Course{}, apperr.ErrNotFound
		}
		return models.Course{}, err
	}
	return updated, nil
}

// Delete removes the caller's course and every enrollment referencing it.
// The cascade runs in a transaction; on servers without transaction
// support it falls back to ordered deletes (enrollments first) and, if
// that still fails partway, retries once before surfacing ErrConflict.
// Both deletes are idempotent, so the retry is safe.
func (s *Store) Delete(ctx context.Context, id, callerID primitive.ObjectID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.InstructorID != callerID {
		return apperr.ErrNotOwner
	}

	cascade := func(ctx context.Context) error {
		if _, err := s.enrollments.DeleteMany(ctx, bson.M{"course_id": id}); err != nil {
			return err
		}
		if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "instructor_id": callerID}); err != nil {
			return err
		}
		return nil
	}

	if err := txn.Run(ctx, s.db, s.log, cascade); err != nil {
		s.log.Warn("course cascade delete failed, retrying once",
			zap.String("course_id", id.Hex()), zap.Error(err))
		if err := cascade(ctx); err != nil {
			return fmt.Errorf("%w: cascade delete of course %s: %v", apperr.ErrConflict, id.Hex(), err)
		}
	}
	return nil
}

// ListByInstructor returns all of an instructor's courses, newest first.
func (s *Store) ListByInstructor(ctx context.Context, instructorID primitive.ObjectID) ([]models.Course, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"instructor_id": instructorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Search returns published courses matching the criteria, in the
// criteria's sort order. No match is an empty slice, not an error.
func (s *Store) Search(ctx context.Context, crit catalogsearch.Criteria) ([]models.Course, error) {
	cur, err := s.c.Find(ctx, crit.Filter(), options.Find().SetSort(crit.SortSpec()))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func validateFields(title, description, category, level string, price float64, duration int, materials []models.CourseMaterial) error {
	if strings.TrimSpace(title) == "" {
		return apperr.Validationf("title is required")
	}
	if strings.TrimSpace(description) == "" {
		return apperr.Validationf("description is required")
	}
	if strings.TrimSpace(category) == "" {
		return apperr.Validationf("category is required")
	}
	if !models.ValidLevel(level) {
		return apperr.Validationf("level must be Beginner, Intermediate, Advanced, or All Levels")
	}
	if price < 0 {
		return apperr.Validationf("price must be >= 0")
	}
	if duration < 0 {
		return apperr.Validationf("duration must be >= 0")
	}
	for _, m := range materials {
		if !models.ValidMaterialType(m.Type) {
			return apperr.Validationf("material type %q is not valid", m.Type)
		}
	}
	return nil
}

// withMaterialIDs assigns an ID to each material that does not have one
// yet. Existing IDs are kept so client references stay stable.
func withMaterialIDs(materials []models.CourseMaterial) []models.CourseMaterial {
	if len(materials) == 0 {
		return nil
	}
	out := make([]models.CourseMaterial, len(materials))
	copy(out, materials)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

func sanitizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = htmlsanitize.StrictSanitize(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
