// internal/app/features/enrollments/enroll.go
package enrollments

import (
	"context"
	"net/http"

	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// enrollRequest is the payload for POST /enrollments.
type enrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// HandleEnroll handles POST /enrollments: the calling student joins a
// course. Enrolling twice is a 409; the uniqueness is enforced by the
// database index, so racing requests cannot both succeed.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req enrollRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "course_id is required")
		return
	}

	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	enr, err := h.Enrollments.Enroll(ctx, userID, courseID)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}

	h.Log.Info("student enrolled",
		zap.String("student_id", userID.Hex()),
		zap.String("course_id", courseID.Hex()))
	httpjson.Write(w, http.StatusCreated, enr)
}
