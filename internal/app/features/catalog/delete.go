// internal/app/features/catalog/delete.go
package catalog

import (
	"context"
	"net/http"

	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDeleteCourse handles DELETE /courses/{id}. Deleting a course
// also removes every enrollment referencing it; the cascade runs in a
// transaction where the server supports one.
func (h *Handler) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	if err := h.Courses.Delete(ctx, id, userID); err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}

	h.Log.Info("course deleted",
		zap.String("course_id", id.Hex()),
		zap.String("instructor_id", userID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}
