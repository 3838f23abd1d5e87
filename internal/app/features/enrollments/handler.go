// internal/app/features/enrollments/handler.go
package enrollments

import (
	enrollmentstore "github.com/edukit/coursehub/internal/app/store/enrollments"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the enrollments feature.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Enrollments *enrollmentstore.Store

	validate *validator.Validate
}

// NewHandler constructs an enrollments Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Enrollments: enrollmentstore.New(db),
		validate:    validator.New(),
	}
}
