// Package config provides configuration management for the stanza server.
// It includes support for the text generation provider, environment variable
// expansion, and runtime behavior customization.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the shared validator instance used for struct-tag validation.
var validate = validator.New()

// Config represents the complete server configuration.
// It combines server settings, generation provider configuration, and
// logging preferences into a single, cohesive configuration structure.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds server-specific configuration for the HTTP server.
// It defines timeouts, limits, and operational parameters.
type ServerConfig struct {
	// Port specifies the HTTP server port (default: 8080)
	Port int `yaml:"port" validate:"gte=0,lte=65535"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body (default: 30s)
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"gte=0"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response (default: 45s)
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values (default: 1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes" validate:"gte=0"`

	// ShutdownTimeout specifies how long to wait for the server to shutdown
	// gracefully before forcing termination (default: 30s)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// GenerationConfig holds configuration for the hosted text generation service.
// The service streams output fragments, which the server drains before
// trimming the result to complete sentences.
type GenerationConfig struct {
	// Endpoint is the base URL of the generation API
	// (default: https://api.replicate.com)
	Endpoint string `yaml:"endpoint" validate:"required,url"`

	// APIToken authenticates against the generation API.
	// Use environment variables (e.g., ${REPLICATE_API_TOKEN}) for secure
	// configuration.
	APIToken string `yaml:"api_token" validate:"required"`

	// DefaultModel is the model version used when a request does not name one.
	// It may be empty, in which case the model query parameter is passed
	// through as-is.
	DefaultModel string `yaml:"default_model"`

	// MaxLength is the maximum-length parameter sent with every generation
	// call (default: 100)
	MaxLength int `yaml:"max_length" validate:"gt=0"`

	// Timeout bounds a single generation call, including draining the
	// fragment stream (default: 60s)
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	// Level sets logging verbosity: debug, info, warn, error
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`

	// Format specifies log output format: json or text
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

// DefaultConfig returns a configuration with sensible defaults for local use.
// The API token is intentionally left empty so that a missing credential is
// caught by validation rather than silently producing failing requests.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    45 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		Generation: GenerationConfig{
			Endpoint:  "https://api.replicate.com",
			APIToken:  "${REPLICATE_API_TOKEN}",
			MaxLength: 100,
			Timeout:   60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadFile loads configuration from a YAML file
func LoadFile(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// expandEnvVars resolves environment variable references within configuration
// strings. It supports:
//
//   - Standard substitution: "${REPLICATE_API_TOKEN}" → token value
//   - Default values: "${PORT:-8080}" → "8080" when PORT is unset
//   - Nested references, resolved until a fixed point is reached
//
// Unset variables without a default expand to the empty string, matching
// os.Expand semantics.
func expandEnvVars(s string) string {
	result := os.Expand(s, func(key string) string {
		// ${VAR:-default} falls back when VAR is unset or empty
		if i := strings.Index(key, ":-"); i >= 0 {
			envKey := key[:i]
			defaultValue := key[i+2:]

			if val := os.Getenv(envKey); val != "" {
				return val
			}
			return defaultValue
		}

		return os.Getenv(key)
	})

	// Resolve nested references until no further substitutions occur
	prev := ""
	for prev != result {
		prev = result
		result = os.Expand(result, os.Getenv)
	}

	return result
}

// Load loads configuration from an io.Reader
func Load(r io.Reader) (*Config, error) {
	// Read all bytes to expand environment variables
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables in the YAML
	expandedData := expandEnvVars(string(data))

	// Start with defaults
	config := DefaultConfig()

	// Decode YAML on top of defaults
	dec := yaml.NewDecoder(strings.NewReader(expandedData))
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// The default token placeholder survives when the defaults were not
	// overridden and the environment variable is unset
	if config.Generation.APIToken == "${REPLICATE_API_TOKEN}" {
		config.Generation.APIToken = expandEnvVars(config.Generation.APIToken)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid. Struct-tag constraints are
// checked with go-playground/validator; anything the tags cannot express is
// checked by hand.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid config field %s: failed %q constraint", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Server.ReadTimeout == 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.Server.WriteTimeout == 0 {
		return fmt.Errorf("write timeout must be positive")
	}

	return nil
}
