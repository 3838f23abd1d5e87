// internal/app/features/enrollments/progress.go
package enrollments

import (
	"context"
	"net/http"

	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/edukit/coursehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// progressRequest is the payload for PUT /enrollments/{id}/progress.
// Progress is a pointer so an absent field is a 400, not a silent zero.
type progressRequest struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

// HandleUpdateProgress handles PUT /enrollments/{id}/progress. Reaching
// 100 marks the enrollment completed; once completed the status and
// completion date are frozen, though progress itself may still move.
func (h *Handler) HandleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid enrollment id")
		return
	}

	var req progressRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "progress must be between 0 and 100")
		return
	}

	enr, err := h.Enrollments.UpdateProgress(ctx, id, userID, *req.Progress)
	if err != nil {
		httpjson.StoreError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, enr)
}
