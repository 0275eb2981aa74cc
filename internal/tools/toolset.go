// Package tools declares the five MCP tools exposed by the Frankfurter MCP
// server and their handlers.
//
// Every handler follows the same shape: validate arguments (all failures
// reported at once, before any network call), normalize currency codes to
// uppercase, apply local guidance checks, perform one upstream request,
// render the payload as Markdown or JSON, and truncate oversized output.
// Failures are returned as flagged error results, never as Go errors across
// the protocol boundary, so the calling agent always receives a well-formed
// response envelope.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/frankfurter"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/observe"
	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/render"
)

// Toolset holds the dependencies shared by all tool handlers.
type Toolset struct {
	client    *frankfurter.Client
	metrics   *observe.Metrics
	charLimit int

	// now is the clock used for the future-date guidance check.
	// Overridable in tests.
	now func() time.Time
}

// Option is a functional option for configuring a Toolset.
type Option func(*Toolset)

// WithMetrics attaches tool-call instrumentation. When nil (the default), no
// metrics are recorded.
func WithMetrics(m *observe.Metrics) Option {
	return func(ts *Toolset) {
		ts.metrics = m
	}
}

// WithCharacterLimit overrides the response size ceiling.
// Defaults to [render.DefaultCharacterLimit].
func WithCharacterLimit(limit int) Option {
	return func(ts *Toolset) {
		ts.charLimit = limit
	}
}

// WithClock overrides the clock used for date guidance checks.
func WithClock(now func() time.Time) Option {
	return func(ts *Toolset) {
		ts.now = now
	}
}

// New creates a Toolset backed by the given upstream client.
func New(client *frankfurter.Client, opts ...Option) *Toolset {
	ts := &Toolset{
		client:    client,
		charLimit: render.DefaultCharacterLimit,
		now:       time.Now,
	}
	for _, o := range opts {
		o(ts)
	}
	return ts
}

// Register adds all five tools to the given MCP server.
func (ts *Toolset) Register(s *mcp.Server) {
	mcp.AddTool(s, convertCurrencyTool(), ts.handleConvert)
	mcp.AddTool(s, latestRatesTool(), ts.handleLatestRates)
	mcp.AddTool(s, historicalRatesTool(), ts.handleHistoricalRates)
	mcp.AddTool(s, timeSeriesTool(), ts.handleTimeSeries)
	mcp.AddTool(s, listCurrenciesTool(), ts.handleListCurrencies)
}

// textResult wraps plain text in a success result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult wraps a user-facing message in a flagged error result.
func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// finish records instrumentation for a completed tool call and returns res
// unchanged. status should be one of ok, validation_error, guidance_error,
// or the upstream error kind.
func (ts *Toolset) finish(ctx context.Context, tool, status string, start time.Time, res *mcp.CallToolResult) *mcp.CallToolResult {
	elapsed := time.Since(start)
	if ts.metrics != nil {
		ts.metrics.RecordToolCall(ctx, tool, status, elapsed.Seconds())
	}
	slog.Debug("tool call completed", "tool", tool, "status", status, "duration_ms", elapsed.Milliseconds())
	return res
}

// fail converts an upstream error into a flagged error result, preserving
// the adapter's user-facing message verbatim.
func (ts *Toolset) fail(ctx context.Context, tool string, start time.Time, err error) *mcp.CallToolResult {
	status := "error"
	if apiErr, ok := err.(*frankfurter.APIError); ok {
		status = string(apiErr.Kind)
	}
	slog.Warn("tool call failed", "tool", tool, "err", err)
	return ts.finish(ctx, tool, status, start, errorResult(err.Error()))
}

// deliver renders a successful response: truncates the formatted text,
// records a truncation if one happened, and wraps everything up.
func (ts *Toolset) deliver(ctx context.Context, tool string, start time.Time, text string, format render.Format) *mcp.CallToolResult {
	final, outcome := render.Truncate(text, format, ts.charLimit)
	res := textResult(final)
	if outcome.Truncated {
		if ts.metrics != nil {
			ts.metrics.RecordTruncation(ctx, tool)
		}
		slog.Debug("response truncated", "tool", tool, "original_length", outcome.OriginalLength)
		res.Meta = mcp.Meta{
			"truncated":       true,
			"message":         outcome.Message,
			"original_length": outcome.OriginalLength,
		}
	}
	return ts.finish(ctx, tool, "ok", start, res)
}
