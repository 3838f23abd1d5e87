// internal/app/features/catalog/edit.go
package catalog

import (
	"context"
	"net/http"

	coursestore "github.com/edukit/coursehub/internal/app/store/courses"
	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"github.com/edukit/coursehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// updateCourseRequest is the payload for PUT /courses/{id}. Every field
// is optional; nil means "leave unchanged". Instructor identity, rating,
// and publish state are not patchable through this endpoint.
type updateCourseRequest struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	Category    *string                  `json:"category"`
	Level       *string                  `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced 'All Levels'"`
	Price       *float64                 `json:"price" validate:"omitempty,gte=0"`
	Duration    *int                     `json:"duration" validate:"omitempty,min=0"`
	Language    *string                  `json:"language"`
	Thumbnail   *string                  `json:"thumbnail"`
	Tags        *[]string                `json:"tags"`
	Materials   *[]models.CourseMaterial `json:"materials" validate:"omitempty,dive"`
}

// HandleUpdateCourse handles PUT /courses/{id}. Only the owning
// instructor may edit; anyone else gets a 403 from the store.
func (h *Handler) HandleUpdateCourse(w http.ResponseWriter, r *http.Request) {
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

	var req updateCourseRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	course, err := h.Courses.Update(ctx, id, userID, coursestore.Patch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Price:       req.Price,
		Duration:    req.Duration,
		Language:    req.Language,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		Materials:   req.Materials,
	})
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, course)
}
