// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/browsercookie"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Cookies is the raw MFP_COOKIES payload; empty means browser fallback.
	Cookies string
	// Host and Port configure the streamable HTTP transport; empty Port
	// means stdio.
	Host string
	Port string
	// Browsers overrides the browser fallback order; nil means the default.
	Browsers []browsercookie.Browser
	// Timeout bounds each browser cookie store read.
	Timeout time.Duration
	// Debug enables verbose logging.
	Debug bool
}

// HTTPAddr returns the streamable HTTP listen address, empty when stdio is
// the selected transport.
func (c *Config) HTTPAddr() string {
	if c.Port == "" {
		return ""
	}
	return c.Host + ":" + c.Port
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists. A missing .env is not an
// error.
// Optional variables: MFP_COOKIES (serialized cookie payload), HOST
// (default 127.0.0.1), PORT (HTTP transport when set), MFP_BROWSERS
// (comma-separated override of the browser fallback order), MFP_TIMEOUT
// (per-store read timeout, default 10s), MFP_DEBUG (verbose logging).
func Load() (*Config, error) {
	_ = godotenv.Load()

	host := "127.0.0.1"
	if v, ok := os.LookupEnv("HOST"); ok && v != "" {
		host = v
	}

	timeout := 10 * time.Second
	if v, ok := os.LookupEnv("MFP_TIMEOUT"); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("MFP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		timeout = parsed
	}

	var browsers []browsercookie.Browser
	if v, ok := os.LookupEnv("MFP_BROWSERS"); ok && v != "" {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(strings.ToLower(name))
			if name == "" {
				continue
			}
			b := browsercookie.Browser(name)
			if browsercookie.ReaderFor(b) == nil {
				return nil, fmt.Errorf("MFP_BROWSERS names unknown browser %q", name)
			}
			browsers = append(browsers, b)
		}
	}

	debug := false
	if v, ok := os.LookupEnv("MFP_DEBUG"); ok {
		switch strings.ToLower(v) {
		case "", "0", "false", "no":
		default:
			debug = true
		}
	}

	return &Config{
		Cookies:  os.Getenv("MFP_COOKIES"),
		Host:     host,
		Port:     os.Getenv("PORT"),
		Browsers: browsers,
		Timeout:  timeout,
		Debug:    debug,
	}, nil
}
