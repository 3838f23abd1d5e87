// internal/app/features/catalog/create.go
package catalog

import (
	"context"
	"net/http"

	coursestore "github.com/edukit/coursehub/internal/app/store/courses"
	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"github.com/edukit/coursehub/internal/domain/models"
)

// createCourseRequest is the payload for POST /courses. Price and
// Duration are pointers so "absent" and "zero" are distinguishable;
// zero is a legal value for both.
type createCourseRequest struct {
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description" validate:"required"`
	Category    string                  `json:"category" validate:"required"`
	Level       string                  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced 'All Levels'"`
	Price       *float64                `json:"price" validate:"required,gte=0"`
	Duration    *int                    `json:"duration" validate:"required,min=0"`
	Language    string                  `json:"language"`
	Thumbnail   string                  `json:"thumbnail"`
	Tags        []string                `json:"tags"`
	Materials   []models.CourseMaterial `json:"materials" validate:"dive"`
}

// HandleCreateCourse handles POST /courses. Teachers only (enforced in
// routes); the caller becomes the course's instructor.
func (h *Handler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createCourseRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	course, err := h.Courses.Create(ctx, userID, name, coursestore.NewCourse{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Price:       *req.Price,
		Duration:    *req.Duration,
		Language:    req.Language,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		Materials:   req.Materials,
	})
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, course)
}
