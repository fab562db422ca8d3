// Package config holds the relay's process-lifetime settings and the
// per-project credential list.
//
// Settings are populated in three layers: built-in defaults, an optional
// YAML file with ${VAR} / ${VAR:-default} expansion, then environment
// overrides. Project credentials live in a separate JSON environment
// variable and are re-read on every request (see LoadProjects).
package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings is the server configuration. It carries no credentials.
type Settings struct {
	// Bind is the listen address for the HTTP server.
	Bind string `yaml:"bind" env:"RELAY_BIND"`

	// TelegramAPIURL is the Bot API base URL. Overridable for tests and
	// self-hosted Bot API servers.
	TelegramAPIURL string `yaml:"telegram_api_url" env:"RELAY_TELEGRAM_API_URL"`

	// ProjectsVar names the environment variable holding the JSON array
	// of project credentials.
	ProjectsVar string `yaml:"projects_var" env:"RELAY_PROJECTS_VAR"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"RELAY_LOG_LEVEL"`

	// TraceEndpoint is an optional OTLP/HTTP collector endpoint. Tracing
	// is disabled when empty.
	TraceEndpoint string `yaml:"trace_endpoint" env:"RELAY_TRACE_ENDPOINT"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"RELAY_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"RELAY_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"RELAY_SHUTDOWN_TIMEOUT"`
}

// defaults fills zero values with sensible defaults.
func (s *Settings) defaults() {
	if s.Bind == "" {
		s.Bind = "127.0.0.1:8080"
	}
	if s.TelegramAPIURL == "" {
		s.TelegramAPIURL = "https://api.telegram.org"
	}
	if s.ProjectsVar == "" {
		s.ProjectsVar = DefaultProjectsVar
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = 10 * time.Second
	}
	if s.WriteTimeout <= 0 {
		// Document uploads to Telegram can take a while; the write timeout
		// bounds the whole response, uploads included.
		s.WriteTimeout = 120 * time.Second
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = 5 * time.Second
	}
}

// Validate checks field constraints after all layers have been applied.
func (s *Settings) Validate() error {
	if _, err := net.ResolveTCPAddr("tcp", s.Bind); err != nil {
		return fmt.Errorf("config: invalid bind address %q: %w", s.Bind, err)
	}

	u, err := url.Parse(s.TelegramAPIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config: telegram_api_url must be a valid http/https URL, got %q", s.TelegramAPIURL)
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level must be debug, info, warn or error, got %q", s.LogLevel)
	}

	return nil
}

// LoadSettings builds Settings from defaults, the optional YAML file at
// path, and environment overrides, in that order of precedence (later
// layers win). An empty path skips the file layer.
func LoadSettings(path string) (*Settings, error) {
	var s Settings

	if path != "" {
		if err := loadFile(path, &s); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	s.defaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}
