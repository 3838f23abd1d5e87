// internal/app/features/stats/handler.go
package stats

import (
	"context"
	"net/http"

	coursestore "github.com/edukit/coursehub/internal/app/store/courses"
	enrollmentstore "github.com/edukit/coursehub/internal/app/store/enrollments"
	statsstore "github.com/edukit/coursehub/internal/app/store/stats"
	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the dashboard statistics endpoints.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Courses     *coursestore.Store
	Enrollments *enrollmentstore.Store
}

// NewHandler constructs a stats Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Courses:     coursestore.New(db, logger),
		Enrollments: enrollmentstore.New(db),
	}
}

// ServeAdminStats handles GET /stats: platform-wide totals for the
// admin dashboard.
func (h *Handler) ServeAdminStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	httpjson.Write(w, http.StatusOK, statsstore.FetchDashboardCounts(ctx, h.DB))
}

// teacherStats are the calling teacher's own totals.
type teacherStats struct {
	Courses          int   `json:"totalCourses"`
	PublishedCourses int   `json:"publishedCourses"`
	Students         int64 `json:"totalStudents"`
}

// ServeTeacherStats handles GET /stats/teaching: counts across the
// calling teacher's courses. Students is the sum of enrollments across
// those courses, so a student taking two of the teacher's courses
// counts twice.
func (h *Handler) ServeTeacherStats(w http.ResponseWriter, r *http.Request) {
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

	out := teacherStats{Courses: len(courses)}
	ids := make([]primitive.ObjectID, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
		if c.IsPublished {
			out.PublishedCourses++
		}
	}

	counts, err := h.Enrollments.CountPerCourse(ctx, ids)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	for _, n := range counts {
		out.Students += n
	}

	httpjson.Write(w, http.StatusOK, out)
}
