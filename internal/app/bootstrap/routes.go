// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	catalogfeature "github.com/edukit/coursehub/internal/app/features/catalog"
	enrollmentsfeature "github.com/edukit/coursehub/internal/app/features/enrollments"
	healthfeature "github.com/edukit/coursehub/internal/app/features/health"
	statsfeature "github.com/edukit/coursehub/internal/app/features/stats"
	"github.com/edukit/coursehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// CourseHub is a JSON API behind an authenticating gateway: the
// LoadPrincipal middleware trusts the gateway's identity headers, and
// the feature routers enforce role requirements per route.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Global auth middleware: loads the gateway-injected principal into
	// context. This makes the caller available to all handlers via
	// auth.CurrentUser(r).
	r.Use(auth.LoadPrincipal)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CourseHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Course catalog: public browsing plus teacher management
	catalogHandler := catalogfeature.NewHandler(deps.CourseHubMongoDatabase, logger)
	r.Mount("/courses", catalogfeature.Routes(catalogHandler))

	// Enrollments: students joining courses and tracking progress
	enrollmentsHandler := enrollmentsfeature.NewHandler(deps.CourseHubMongoDatabase, logger)
	r.Mount("/enrollments", enrollmentsfeature.Routes(enrollmentsHandler))

	// Dashboard statistics
	statsHandler := statsfeature.NewHandler(deps.CourseHubMongoDatabase, logger)
	r.Mount("/stats", statsfeature.Routes(statsHandler))

	return r, nil
}
