//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/jsamuelsen/builder-service/internal/adapters/http"
	"github.com/jsamuelsen/builder-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/builder-service/internal/adapters/metrics"
	"github.com/jsamuelsen/builder-service/internal/app"
	"github.com/jsamuelsen/builder-service/internal/platform/config"
	"github.com/jsamuelsen/builder-service/internal/ports"
)

// configDir is the repository configs directory, relative to this package.
const configDir = "../../configs"

// loadTestConfig loads the test profile on an ephemeral port.
func loadTestConfig(t testing.TB) *config.Config {
	t.Helper()

	cfg, err := config.LoadFrom(configDir, "test")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = 0

	return cfg
}

// startService wires the service the same way cmd/service does and serves it
// on a loopback port until the test ends. It returns the base URL and the
// registry backing /-/metrics.
func startService(t testing.TB, cfg *config.Config) (string, *prometheus.Registry) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	recorder, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	books := app.NewBookService(app.BookServiceConfig{
		Recorder:         recorder,
		Logger:           logger,
		BatchConcurrency: cfg.Builder.BatchConcurrency,
	})
	phones := app.NewPhoneService(app.PhoneServiceConfig{Recorder: recorder, Logger: logger})

	registry := ports.NewHealthRegistry()
	registry.CheckTimeout = time.Second
	require.NoError(t, registry.Register(books))
	require.NoError(t, registry.Register(phones))

	server := httpadapter.New(&cfg.Server, logger)
	httpadapter.SetupRouter(server.Engine(), httpadapter.RouterConfig{
		Logger:      logger,
		ServiceName: cfg.Telemetry.ServiceName,
		AuthConfig:  &cfg.Auth,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "test", "test")).
			WithGatherer(reg),
		BookHandler:  handlers.NewBookHandler(books, cfg.Builder.BatchLimit),
		PhoneHandler: handlers.NewPhoneHandler(phones),
		Timeout:      cfg.Server.RequestTimeout,
	})

	serverErr, err := server.Start()
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		_ = server.Shutdown(ctx)

		for range serverErr {
		}
	})

	return "http://" + server.Addr(), reg
}
