// internal/app/features/enrollments/routes.go
package enrollments

import (
	"github.com/edukit/coursehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter for /enrollments. Everything here acts
// on the caller's own enrollments and requires a signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleEnroll)
		pr.Get("/my-courses", h.ServeMyEnrollments)
		pr.Put("/{id}/progress", h.HandleUpdateProgress)
	})

	return r
}
