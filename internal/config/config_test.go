package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "default configuration is valid",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name: "http enabled with valid settings",
			mutate: func(c *Config) {
				c.HTTP.Enabled = true
				c.HTTP.Address = "0.0.0.0"
				c.HTTP.Port = 9090
			},
			expectError: false,
		},
		{
			name: "invalid http port",
			mutate: func(c *Config) {
				c.HTTP.Enabled = true
				c.HTTP.Port = 70000
			},
			expectError: true,
			errorMsg:    "http port must be between 1 and 65535",
		},
		{
			name: "empty http address when enabled",
			mutate: func(c *Config) {
				c.HTTP.Enabled = true
				c.HTTP.Address = ""
			},
			expectError: true,
			errorMsg:    "http address cannot be empty",
		},
		{
			name: "http disabled skips http checks",
			mutate: func(c *Config) {
				c.HTTP.Enabled = false
				c.HTTP.Port = -1
				c.HTTP.Address = ""
			},
			expectError: false,
		},
		{
			name: "invalid log level",
			mutate: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			expectError: true,
			errorMsg:    "level must be one of",
		},
		{
			name: "invalid log format",
			mutate: func(c *Config) {
				c.Logging.Format = "xml"
			},
			expectError: true,
			errorMsg:    "format must be 'json' or 'text'",
		},
		{
			name: "missing patterns file",
			mutate: func(c *Config) {
				c.Decoder.PatternsFile = "/nonexistent/patterns.yaml"
			},
			expectError: true,
			errorMsg:    "patterns_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if tt.errorMsg != "" && !contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error to contain %q, got %q", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
decoder:
  prompt: "> "
http:
  enabled: true
  address: "127.0.0.1"
  port: 9100
logging:
  level: debug
  format: json
  output: stdout
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Decoder.Prompt != "> " {
		t.Errorf("Prompt = %q, want %q", cfg.Decoder.Prompt, "> ")
	}
	if !cfg.HTTP.Enabled || cfg.HTTP.Port != 9100 {
		t.Errorf("HTTP = %+v, want enabled on port 9100", cfg.HTTP)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	// Only one section set: the rest must come from Default().
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Format = %q, want default text", cfg.Logging.Format)
	}
	if cfg.Decoder.Prompt == "" {
		t.Error("expected default prompt")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("logging: [not, a, map]\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
