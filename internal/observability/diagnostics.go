package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"go.opentelemetry.io/otel/metric"
)

// DiagnosticsServer exposes liveness and Prometheus metrics endpoints over
// HTTP while a long-running ingestion is active.
type DiagnosticsServer struct {
	server   *http.Server
	listener net.Listener
	meter    metric.Meter
}

// NewDiagnosticsServer starts an HTTP server at addr with /healthz and
// /metrics endpoints. Instruments created from Meter() are visible to
// Prometheus scrapes.
func NewDiagnosticsServer(addr string, logger *slog.Logger) (*DiagnosticsServer, error) {
	provider, metricsHandler, err := PrometheusHandler()
	if err != nil {
		return nil, fmt.Errorf("create prometheus handler: %w", err)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", metricsHandler)

	var lc net.ListenConfig

	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: mux}

	go func() {
		serveErr := srv.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Warn("diagnostics server stopped", "error", serveErr)
		}
	}()

	return &DiagnosticsServer{
		server:   srv,
		listener: listener,
		meter:    provider.Meter(meterName),
	}, nil
}

// Addr returns the address the server is listening on.
func (d *DiagnosticsServer) Addr() string {
	return d.listener.Addr().String()
}

// Meter returns a meter whose instruments are served at /metrics.
func (d *DiagnosticsServer) Meter() metric.Meter {
	return d.meter
}

// Close gracefully shuts down the diagnostics server.
func (d *DiagnosticsServer) Close() error {
	err := d.server.Shutdown(context.Background())
	if err != nil {
		return fmt.Errorf("shutdown diagnostics server: %w", err)
	}

	return nil
}
