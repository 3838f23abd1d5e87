// internal/app/features/stats/routes.go
package stats

import (
	"github.com/edukit/coursehub/internal/app/system/auth"
	"github.com/edukit/coursehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter for /stats.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.With(auth.RequireRole(authz.RoleAdmin)).Get("/", h.ServeAdminStats)
	r.With(auth.RequireRole(authz.RoleTeacher, authz.RoleAdmin)).Get("/teaching", h.ServeTeacherStats)

	return r
}
