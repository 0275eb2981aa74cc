// Package server assembles the MCP server and runs it over the configured
// transport: stdio for a single local client, or streamable HTTP behind a
// chi router that also serves /healthz and /metrics.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/config"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/health"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/tools"
)

const (
	serverName    = "frankfurter-mcp"
	serverVersion = "1.0.0"
)

// Server wraps an MCP server with its transport configuration.
type Server struct {
	cfg       *config.Config
	mcpServer *mcp.Server
	health    *health.Handler
}

// New builds the MCP server and registers the currency toolset on it. The
// health handler is only consulted by the http transport.
func New(cfg *config.Config, toolset *tools.Toolset, hh *health.Handler) *Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)
	toolset.Register(s)
	return &Server{cfg: cfg, mcpServer: s, health: hh}
}

// Run serves until ctx is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Server.Transport {
	case config.TransportHTTP:
		return s.runHTTP(ctx)
	default:
		// stdio: the protocol owns stdout; all logging goes to stderr.
		slog.Info("serving MCP over stdio")
		return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	}
}

// runHTTP serves the streamable-HTTP MCP transport at /mcp alongside the
// health probes and the Prometheus scrape endpoint.
func (s *Server) runHTTP(ctx context.Context) error {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	s.health.Mount(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/mcp", mcpHandler)

	srv := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("serving MCP over http", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
