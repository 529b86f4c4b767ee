package config

import (
	"net/url"
	"time"

	"hypertask-mcp/internal/mcperr"
	"hypertask-mcp/internal/transport"
)

// Environment variables recognised by the client.
const (
	EnvURL   = "HYPERTASK_MCP_URL"
	EnvToken = "HYPERTASK_BEARER_TOKEN"
)

// DefaultURL is used when no endpoint is configured.
const DefaultURL = "https://mcp.hypertask.ai/mcp"

// Config holds the resolved client settings.
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	Verbose bool
}

// Defaults returns the base configuration.
func Defaults() Config {
	return Config{
		URL:     DefaultURL,
		Timeout: transport.DefaultIdleTimeout,
	}
}

// FromEnv layers the environment over Defaults. getenv is usually os.Getenv.
func FromEnv(getenv func(string) string) Config {
	cfg := Defaults()
	if v := getenv(EnvURL); v != "" {
		cfg.URL = v
	}
	cfg.Token = getenv(EnvToken)
	return cfg
}

// Validate reports the first problem as a ConfigError.
func (c Config) Validate() error {
	if c.Token == "" {
		return mcperr.Configf("%s environment variable is required", EnvToken)
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return mcperr.Configf("invalid MCP URL %q: %v", c.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return mcperr.Configf("invalid MCP URL %q: want an absolute http(s) URL", c.URL)
	}
	if c.Timeout <= 0 {
		return mcperr.Configf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
