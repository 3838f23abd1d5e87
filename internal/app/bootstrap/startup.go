// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	statsstore "github.com/edukit/coursehub/internal/app/store/stats"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It logs the catalog totals so operators can eyeball a fresh deploy.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	counts := statsstore.FetchDashboardCounts(ctx, deps.CourseHubMongoDatabase)
	logger.Info("catalog loaded",
		zap.Int64("courses", counts.Courses),
		zap.Int64("published", counts.PublishedCourses),
		zap.Int64("enrollments", counts.Enrollments))
	return nil
}
