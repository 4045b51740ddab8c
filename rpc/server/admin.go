package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"net"
	"net/http"
	"time"
)

// adminServer exposes the server metrics and a health check over HTTP
type adminServer struct {
	server   *http.Server
	listener net.Listener
}

// newAdminRouter registers the admin routes
func newAdminRouter(metrics *common.ServerMetrics) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		metrics.WritePrometheus(w)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})

	return r
}

// startAdminServer starts serving the admin routes in the background
func startAdminServer(endpoint string, metrics *common.ServerMetrics) (*adminServer, error) {
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to start metrics endpoint: %w", err)
	}

	a := &adminServer{
		server:   &http.Server{Handler: newAdminRouter(metrics), ReadHeaderTimeout: 5 * time.Second},
		listener: listener,
	}

	go func() {
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("Metrics endpoint failed: %v", err)
		}
	}()

	Logger.Infof("Serving metrics on http://%s/metrics", listener.Addr())
	return a, nil
}

func (a *adminServer) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.server.Shutdown(ctx)
}
