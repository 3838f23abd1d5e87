// internal/app/features/catalog/teachercourses.go
package catalog

import (
	"context"
	"net/http"

	"github.com/edukit/coursehub/internal/app/system/apperr"
	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"github.com/edukit/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// teacherCourse is a course row on the teacher dashboard, with the
// derived enrollment count attached.
type teacherCourse struct {
	models.Course
	EnrolledCount int64 `json:"enrolled_count"`
}

// ServeMyCourses handles GET /courses/mine: every course the calling
// teacher owns (published or not), newest first, each with its current
// enrollment count.
func (h *Handler) ServeMyCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	courses, err := h.Courses.ListByInstructor(ctx, userID)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}

	ids := make([]primitive.ObjectID, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	counts, err := h.Enrollments.CountPerCourse(ctx, ids)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}

	out := make([]teacherCourse, len(courses))
	for i, c := range courses {
		out[i] = teacherCourse{Course: c, EnrolledCount: counts[c.ID]}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// rosterResponse is the derived roster of a course.
type rosterResponse struct {
	CourseID   primitive.ObjectID   `json:"course_id"`
	StudentIDs []primitive.ObjectID `json:"student_ids"`
	Count      int                  `json:"count"`
}

// ServeRoster handles GET /courses/{id}/students. Only the owning
// instructor (or an admin) may view a roster.
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	course, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	if course.InstructorID != userID && role != authz.RoleAdmin {
		httpjson.StoreError(w, h.Log, apperr.ErrNotOwner)
		return
	}

	ids, err := h.Enrollments.StudentIDs(ctx, id)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, rosterResponse{
		CourseID:   id,
		StudentIDs: ids,
		Count:      len(ids),
	})
}
