// Command frankfurter-mcp is an MCP server exposing currency conversion and
// exchange-rate lookup tools backed by the Frankfurter API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/config"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/frankfurter"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/health"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/observe"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/server"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/tools"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to an optional YAML configuration file")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "frankfurter-mcp: %v\n", err)
		return 1
	}

	// Logs always go to stderr: in stdio mode stdout carries the protocol
	// stream.
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("frankfurter-mcp starting",
		"transport", cfg.Server.Transport,
		"upstream", cfg.Upstream.BaseURL,
		"timeout_s", cfg.Upstream.TimeoutSeconds,
		"character_limit", cfg.Limits.CharacterLimit,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "frankfurter-mcp",
		ServiceVersion: "1.0.0",
	})
	if err != nil {
		slog.Error("failed to initialise metrics provider", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			slog.Warn("metrics shutdown error", "err", err)
		}
	}()

	metrics := observe.DefaultMetrics()

	client := frankfurter.New(
		frankfurter.WithBaseURL(cfg.Upstream.BaseURL),
		frankfurter.WithTimeout(cfg.Upstream.Timeout()),
		frankfurter.WithMetrics(metrics),
	)

	toolset := tools.New(client,
		tools.WithMetrics(metrics),
		tools.WithCharacterLimit(cfg.Limits.CharacterLimit),
	)

	hh := health.New(health.Checker{Name: "frankfurter", Check: client.Ping})

	srv := server.New(cfg, toolset, hh)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	slog.Info("goodbye")
	return 0
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
