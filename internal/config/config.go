// Package config provides the configuration schema and loader for the
// Frankfurter MCP server.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then environment variable overrides. The resulting [Config] is immutable
// by convention; it is built once at process start and passed down.
package config

import "time"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Transport selects how the MCP server speaks to its client.
type Transport string

const (
	// TransportStdio serves a single client over stdin/stdout. Logs go to
	// stderr so the protocol stream stays clean.
	TransportStdio Transport = "stdio"

	// TransportHTTP serves the streamable-HTTP MCP transport, plus /healthz
	// and /metrics endpoints.
	TransportHTTP Transport = "http"
)

// IsValid reports whether t is a recognised transport.
func (t Transport) IsValid() bool {
	return t == TransportStdio || t == TransportHTTP
}

// Config is the root configuration structure. Load it with [Load] or
// [FromEnv].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Limits   LimitsConfig   `yaml:"limits"`
}

// ServerConfig holds transport and logging settings.
type ServerConfig struct {
	// Transport selects stdio or http. Defaults to stdio.
	Transport Transport `yaml:"transport" env:"FRANKFURTER_MCP_TRANSPORT"`

	// ListenAddr is the TCP address for the http transport (e.g., ":8080").
	// Ignored for stdio.
	ListenAddr string `yaml:"listen_addr" env:"FRANKFURTER_MCP_LISTEN_ADDR"`

	// LogLevel controls verbosity. Defaults to info.
	LogLevel LogLevel `yaml:"log_level" env:"FRANKFURTER_MCP_LOG_LEVEL"`
}

// UpstreamConfig holds the Frankfurter API endpoint settings.
type UpstreamConfig struct {
	// BaseURL is the Frankfurter API root. Override for self-hosted
	// instances or tests.
	BaseURL string `yaml:"base_url" env:"FRANKFURTER_MCP_BASE_URL"`

	// TimeoutSeconds bounds every upstream request. Defaults to 10.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"FRANKFURTER_MCP_TIMEOUT_SECONDS"`
}

// Timeout returns the upstream request timeout as a [time.Duration].
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// LimitsConfig holds response size bounds.
type LimitsConfig struct {
	// CharacterLimit is the ceiling on any tool's textual output, counted
	// in Unicode code points. Oversized output is truncated with an
	// explanatory notice. Defaults to 25000.
	CharacterLimit int `yaml:"character_limit" env:"FRANKFURTER_MCP_CHARACTER_LIMIT"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Transport:  TransportStdio,
			ListenAddr: ":8080",
			LogLevel:   LogInfo,
		},
		Upstream: UpstreamConfig{
			BaseURL:        "https://api.frankfurter.app",
			TimeoutSeconds: 10,
		},
		Limits: LimitsConfig{
			CharacterLimit: 25000,
		},
	}
}
