// Package httpjson writes JSON responses and maps store errors onto HTTP
// status codes. Response bodies follow the API's error shape:
//
//	{"message": "Course not found"}
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edukit/coursehub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Message string `json:"message"`
}

// Error writes a JSON error body with the given status and message.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errBody{Message: msg})
}

// StoreError maps a store-layer error to an HTTP response. Unknown errors
// become a 500 with a generic body; the cause is logged, not leaked.
func StoreError(w http.ResponseWriter, log *zap.Logger, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		Error(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, apperr.ErrNotFound):
		Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, apperr.ErrNotOwner):
		Error(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, apperr.ErrDuplicateEnrollment):
		Error(w, http.StatusConflict, "Already enrolled in this course")
	case errors.Is(err, apperr.ErrConflict):
		Error(w, http.StatusConflict, "Conflicting concurrent modification")
	default:
		log.Error("request failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "Server error")
	}
}

// Decode reads a JSON request body into v. The caller treats a false
// return as already-handled (a 400 has been written).
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
