package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadValidConfig(t *testing.T) {
	yamlConfig := `
server:
  port: 9090
  read_timeout: 45s
  write_timeout: 45s
  max_header_bytes: 2097152
  shutdown_timeout: 45s

generation:
  endpoint: https://api.replicate.com
  api_token: test-token
  default_model: replicate/flan-t5-xl
  max_length: 200
  timeout: 30s

logging:
  level: debug
  format: json
`

	config, err := Load(strings.NewReader(yamlConfig))
	if err != nil {
		t.Fatalf("Failed to load valid config: %v", err)
	}

	// Check server config
	if config.Server.Port != 9090 {
		t.Errorf("unexpected port: got %d, want %d", config.Server.Port, 9090)
	}
	if config.Server.ReadTimeout != 45*time.Second {
		t.Errorf("unexpected read timeout: got %v, want %v", config.Server.ReadTimeout, 45*time.Second)
	}
	if config.Server.MaxHeaderBytes != 2097152 {
		t.Errorf("unexpected max header bytes: got %d, want %d", config.Server.MaxHeaderBytes, 2097152)
	}

	// Check generation config
	if config.Generation.APIToken != "test-token" {
		t.Errorf("unexpected api token: got %s, want %s", config.Generation.APIToken, "test-token")
	}
	if config.Generation.DefaultModel != "replicate/flan-t5-xl" {
		t.Errorf("unexpected default model: got %s", config.Generation.DefaultModel)
	}
	if config.Generation.MaxLength != 200 {
		t.Errorf("unexpected max length: got %d, want %d", config.Generation.MaxLength, 200)
	}
	if config.Generation.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: got %v, want %v", config.Generation.Timeout, 30*time.Second)
	}

	// Check logging config
	if config.Logging.Level != "debug" {
		t.Errorf("unexpected log level: got %s, want %s", config.Logging.Level, "debug")
	}
	if config.Logging.Format != "json" {
		t.Errorf("unexpected log format: got %s, want %s", config.Logging.Format, "json")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	yamlConfig := `
generation:
  api_token: test-token
`

	config, err := Load(strings.NewReader(yamlConfig))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Server.Port != 8080 {
		t.Errorf("default port not applied: got %d, want 8080", config.Server.Port)
	}
	if config.Generation.Endpoint != "https://api.replicate.com" {
		t.Errorf("default endpoint not applied: got %s", config.Generation.Endpoint)
	}
	if config.Generation.MaxLength != 100 {
		t.Errorf("default max length not applied: got %d, want 100", config.Generation.MaxLength)
	}
	if config.Generation.Timeout != 60*time.Second {
		t.Errorf("default generation timeout not applied: got %v", config.Generation.Timeout)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name       string
		yamlConfig string
	}{
		{
			name: "invalid port",
			yamlConfig: `
server:
  port: 70000
generation:
  api_token: test-token
`,
		},
		{
			name: "missing api token",
			yamlConfig: `
server:
  port: 8080
generation:
  api_token: ""
`,
		},
		{
			name: "invalid endpoint",
			yamlConfig: `
generation:
  endpoint: "not a url"
  api_token: test-token
`,
		},
		{
			name: "zero max length",
			yamlConfig: `
generation:
  api_token: test-token
  max_length: 0
`,
		},
		{
			name: "invalid log level",
			yamlConfig: `
generation:
  api_token: test-token
logging:
  level: verbose
`,
		},
		{
			name:       "malformed yaml",
			yamlConfig: `server: [not a map`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.yamlConfig)); err == nil {
				t.Errorf("expected error for %s, got nil", tt.name)
			}
		})
	}
}

func TestDefaultConfigValidatesWithToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generation.APIToken = "some-token"

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config with token should validate, got: %v", err)
	}
}
