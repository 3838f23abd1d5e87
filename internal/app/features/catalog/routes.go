// internal/app/features/catalog/routes.go
package catalog

import (
	"github.com/edukit/coursehub/internal/app/system/auth"
	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter for /courses. Browsing is public;
// everything that writes requires a signed-in teacher.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// PUBLIC
	r.Get("/", h.ServeCourseList)

	// TEACHER
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(authz.RoleTeacher, authz.RoleAdmin))

		pr.Get("/mine", h.ServeMyCourses)
		pr.Post("/", h.HandleCreateCourse)
		pr.Put("/{id}", h.HandleUpdateCourse)
		pr.Delete("/{id}", h.HandleDeleteCourse)
		pr.Post("/{id}/publish", h.HandleTogglePublish)
		pr.Get("/{id}/students", h.ServeRoster)
	})

	// PUBLIC (chi matches the literal /mine before this wildcard)
	r.Get("/{id}", h.ServeCourseDetail)

	return r
}
