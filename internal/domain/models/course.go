// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course levels. "All Levels" carries the space; it is the value the
// catalog filter matches against.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelAllLevels    = "All Levels"
)

// ValidLevel reports whether s is one of the recognized course levels.
func ValidLevel(s string) bool {
	switch s {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAllLevels:
		return true
	}
	return false
}

// DefaultLanguage is used when a course is created without a language.
const DefaultLanguage = "English"

// Material types for embedded course materials.
const (
	MaterialVideo      = "video"
	MaterialDocument   = "document"
	MaterialQuiz       = "quiz"
	MaterialAssignment = "assignment"
)

// ValidMaterialType reports whether s is a recognized material type.
func ValidMaterialType(s string) bool {
	switch s {
	case MaterialVideo, MaterialDocument, MaterialQuiz, MaterialAssignment:
		return true
	}
	return false
}

// CourseMaterial is a content item embedded on a course (video lesson,
// document, quiz, assignment), ordered by Order. ID is assigned by the
// server on first write and stays stable across edits.
type CourseMaterial struct {
	ID      string `bson:"id" json:"id"`
	Title   string `bson:"title" json:"title"`
	Type    string `bson:"type" json:"type"`
	Content string `bson:"content,omitempty" json:"content,omitempty"`
	Order   int    `bson:"order" json:"order"`
}

// Rating is the aggregate review score for a course. It is written only
// by the (external) rating subsystem; enrollment operations never touch it.
type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int64   `bson:"count" json:"count"`
}

// Course is a catalog entry owned by exactly one instructor.
//
// NOTE:
//   - The enrolled-student roster is NOT embedded on Course.
//     "Is student X enrolled in course Y" is answered by the enrollments
//     collection; roster counts are computed from it on read.
//   - InstructorName is denormalized at creation time and is not
//     auto-synced if the instructor later renames themselves.
type Course struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped

	Description string `bson:"description" json:"description"`

	Category   string `bson:"category" json:"category"`
	CategoryCI string `bson:"category_ci" json:"-"`

	Level    string  `bson:"level" json:"level"`
	Price    float64 `bson:"price" json:"price"`
	Duration int     `bson:"duration" json:"duration"` // hours
	Language string  `bson:"language" json:"language"`

	InstructorID   primitive.ObjectID `bson:"instructor_id" json:"instructor_id"`
	InstructorName string             `bson:"instructor_name" json:"instructor_name"`

	// Opaque reference into the (external) upload subsystem; may be empty.
	Thumbnail string `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`

	Tags      []string         `bson:"tags,omitempty" json:"tags,omitempty"`
	Materials []CourseMaterial `bson:"materials,omitempty" json:"materials,omitempty"`

	Rating Rating `bson:"rating" json:"rating"`

	IsPublished bool `bson:"is_published" json:"is_published"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
