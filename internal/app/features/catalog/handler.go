// internal/app/features/catalog/handler.go
package catalog

import (
	"errors"
	"net/http"

	coursestore "github.com/edukit/coursehub/internal/app/store/courses"
	enrollmentstore "github.com/edukit/coursehub/internal/app/store/enrollments"
	"github.com/edukit/coursehub/internal/app/system/httpjson"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the catalog feature.
// It holds the course and enrollment stores plus the logger so the
// individual handlers (list, detail, create, edit, publish, delete,
// teacher views) share the same core dependencies.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Courses     *coursestore.Store
	Enrollments *enrollmentstore.Store

	validate *validator.Validate
}

// NewHandler constructs a catalog Handler. It is typically called from
// the bootstrap BuildHandler function, where the application's DB and
// logger are already initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Courses:     coursestore.New(db, logger),
		Enrollments: enrollmentstore.New(db),
		validate:    validator.New(),
	}
}

// writeValidationError renders the first field error of a failed payload
// validation as a 400. Non-validator errors fall through to a generic 400.
func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			httpjson.Error(w, http.StatusBadRequest, fe.Field()+" is required")
		case "oneof":
			httpjson.Error(w, http.StatusBadRequest, fe.Field()+" must be one of: "+fe.Param())
		case "gte", "min":
			httpjson.Error(w, http.StatusBadRequest, fe.Field()+" must be at least "+fe.Param())
		case "lte", "max":
			httpjson.Error(w, http.StatusBadRequest, fe.Field()+" must be at most "+fe.Param())
		default:
			httpjson.Error(w, http.StatusBadRequest, fe.Field()+" is invalid")
		}
		return
	}
	httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
}
