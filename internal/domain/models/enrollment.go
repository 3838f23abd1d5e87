// internal/domain/models/enrollment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment statuses. Progress writes only ever move a record forward
// (enrolled -> in-progress -> completed); "dropped" is set by explicit
// action only, never by a progress update.
const (
	StatusEnrolled   = "enrolled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusDropped    = "dropped"
)

// Enrollment is the authoritative join between students and courses.
// Exactly one document per (student_id, course_id), enforced by a unique
// index; progress is an integer percentage in [0,100].
type Enrollment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID primitive.ObjectID `bson:"student_id" json:"student_id"`
	CourseID  primitive.ObjectID `bson:"course_id" json:"course_id"`

	EnrollmentDate time.Time `bson:"enrollment_date" json:"enrollment_date"`

	Progress int    `bson:"progress" json:"progress"`
	Status   string `bson:"status" json:"status"`

	// Set exactly once, the first time progress reaches 100.
	CompletionDate *time.Time `bson:"completion_date,omitempty" json:"completion_date,omitempty"`

	// Refreshed on every progress write.
	LastAccessed time.Time `bson:"last_accessed" json:"last_accessed"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
