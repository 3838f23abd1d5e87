// internal/app/features/catalog/publish.go
package catalog

import (
	"context"
	"net/http"

	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleTogglePublish handles POST /courses/{id}/publish. Flips the
// published flag; unpublishing leaves existing enrollments untouched.
func (h *Handler) HandleTogglePublish(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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

	course, err := h.Courses.TogglePublish(ctx, id, userID)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, course)
}
