package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/builder-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/builder-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/builder-service/internal/platform/config"
	"github.com/jsamuelsen/builder-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger *slog.Logger

	// ServiceName names the server spans.
	ServiceName string

	// AuthConfig enables the scope check on the batch endpoint.
	AuthConfig *config.AuthConfig

	HealthHandler *handlers.HealthHandler
	BookHandler   *handlers.BookHandler
	PhoneHandler  *handlers.PhoneHandler

	// Timeout is the deadline for /api/v1 requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger - request-scoped logger
//  3. Request ID
//  4. Correlation ID
//  5. OpenTelemetry - tracing and metrics
//  6. Logging - request logging (skips health endpoints)
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth, no timeout
//   - /api/v1/ (public API): builders, with timeout
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine.Use(
		middleware.Recovery(logger),
		middleware.ContextLogger(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers the builder endpoints. The batch endpoint is
// guarded by auth and scope when auth is enabled.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.BookHandler != nil {
		var guards []gin.HandlerFunc
		if cfg.AuthConfig != nil && cfg.AuthConfig.Enabled {
			guards = append(guards,
				middleware.RequireAuth(cfg.AuthConfig),
				middleware.RequireScope(cfg.AuthConfig, cfg.AuthConfig.BatchScope),
			)
		}

		cfg.BookHandler.RegisterBookRoutes(rg, guards...)
	}

	if cfg.PhoneHandler != nil {
		cfg.PhoneHandler.RegisterPhoneRoutes(rg)
	}
}
