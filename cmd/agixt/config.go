package main

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

// DefaultURI is the address of a local AGiXT server.
const DefaultURI = "http://localhost:7437"

// config holds the global CLI settings. Environment variables provide the
// defaults and command-line flags override them.
type config struct {
	URI       string
	APIKey    string
	HasAPIKey bool
	Output    string
	Timeout   time.Duration
	RateLimit float64
	LogLevel  string
	LogFormat string
}

// configFromEnv reads AGIXT_URI, AGIXT_API_KEY, AGIXT_TIMEOUT,
// AGIXT_RATE_LIMIT, AGIXT_LOG_LEVEL and AGIXT_LOG_FORMAT through getenv.
func configFromEnv(getenv func(string) string) (config, error) {
	cfg := config{
		URI:       DefaultURI,
		Output:    outputJSON,
		LogLevel:  "warn",
		LogFormat: "compact",
	}

	if uri := getenv("AGIXT_URI"); uri != "" {
		cfg.URI = uri
	}
	if key := getenv("AGIXT_API_KEY"); key != "" {
		cfg.APIKey = key
		cfg.HasAPIKey = true
	}
	if raw := getenv("AGIXT_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid AGIXT_TIMEOUT %q: %w", raw, err)
		}
		cfg.Timeout = timeout
	}
	if raw := getenv("AGIXT_RATE_LIMIT"); raw != "" {
		limit, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid AGIXT_RATE_LIMIT %q: %w", raw, err)
		}
		cfg.RateLimit = limit
	}
	if level := getenv("AGIXT_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if format := getenv("AGIXT_LOG_FORMAT"); format != "" {
		cfg.LogFormat = format
	}

	return cfg, nil
}

// bindFlags registers the global flags on fs with the current values as
// defaults.
func (c *config) bindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.URI, "uri", c.URI, "AGiXT server base URI (env AGIXT_URI)")
	fs.StringVar(&c.APIKey, "key", c.APIKey, "API key (env AGIXT_API_KEY)")
	fs.StringVar(&c.Output, "output", c.Output, "output format: json, yaml or text")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "per-call timeout, 0 for none (env AGIXT_TIMEOUT)")
	fs.Float64Var(&c.RateLimit, "rate", c.RateLimit, "max calls per second, 0 for unlimited (env AGIXT_RATE_LIMIT)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error (env AGIXT_LOG_LEVEL)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "compact or json (env AGIXT_LOG_FORMAT)")
}

// afterParse records flags that change meaning by being set at all.
func (c *config) afterParse(fs *flag.FlagSet) error {
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "key" {
			c.HasAPIKey = true
		}
	})

	switch c.Output {
	case outputJSON, outputYAML, outputText:
	default:
		return fmt.Errorf("invalid -output %q: want json, yaml or text", c.Output)
	}
	return nil
}
