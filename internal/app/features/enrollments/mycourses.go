// internal/app/features/enrollments/mycourses.go
package enrollments

import (
	"context"
	"net/http"

	"github.com/edukit/coursehub/internal/app/store/queries/studentcourses"
	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
)

// ServeMyEnrollments handles GET /enrollments/my-courses: the calling
// student's enrollments joined with their courses, newest first.
func (h *Handler) ServeMyEnrollments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	rows, err := studentcourses.ListForStudent(ctx, h.DB, userID)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, rows)
}
