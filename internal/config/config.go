package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Config holds all configuration for one linkstat invocation
type Config struct {
	URL             string        `mapstructure:"url"`
	Count           string        `mapstructure:"count"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxRedirects    int           `mapstructure:"max_redirects"`
	FailOnHTTPError bool          `mapstructure:"fail_on_http_error"`
	ReportDir       string        `mapstructure:"report_dir"`
	Logger          LoggerConfig  `mapstructure:"logger"`

	// Headers come straight from the repeatable -H flag
	Headers []string `mapstructure:"-"`
}

// LoggerConfig controls the diagnostic log written next to the result line
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Iterations returns the sample count, clamped to at least one
func (c *Config) Iterations() int {
	return ParseIterations(c.Count)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("url cannot be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must not be negative")
	}
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logger.Level)
	}
	if strings.EqualFold(c.Logger.OutputPath, "stdout") {
		return fmt.Errorf("logger output cannot be stdout, it carries the result line")
	}
	switch strings.ToLower(c.Logger.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logger.Format)
	}
	return nil
}

// ParseIterations reads a sample count the way atoi does: optional leading
// whitespace and sign, then digits up to the first non-digit. Anything that
// does not yield a value of at least one becomes one.
func ParseIterations(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
			break
		}
	}
	if negative || n < 1 {
		return 1
	}
	return n
}
