// internal/app/features/catalog/list.go
package catalog

import (
	"context"
	"net/http"

	"github.com/edukit/coursehub/internal/app/system/catalogsearch"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"github.com/edukit/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeCourseList handles GET /courses.
//
// Query params: search, category, level, priceRange, sort. "All" (or an
// absent param) means no filtering on that dimension. Only published
// courses are returned; no match is an empty array, not an error.
func (h *Handler) ServeCourseList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses, err := h.Courses.Search(ctx, catalogsearch.FromRequest(r))
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, courses)
}

// courseDetail is a course plus its derived enrollment count.
type courseDetail struct {
	models.Course
	EnrolledCount int64 `json:"enrolled_count"`
}

// ServeCourseDetail handles GET /courses/{id}. The enrollment count is
// computed from the enrollments collection on every read; there is no
// counter on the course document to drift.
func (h *Handler) ServeCourseDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

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

	count, err := h.Enrollments.CountByCourse(ctx, id)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, courseDetail{Course: course, EnrolledCount: count})
}
