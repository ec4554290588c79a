package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected overall attempt cap 3, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Memory.MaxTurns != 5 {
		t.Errorf("expected 5 turn-pairs, got %d", cfg.Memory.MaxTurns)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider openai, got %q", cfg.Provider)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %q", cfg.Database.Driver)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cr360.yml")
	data := []byte("provider: ollama\nmodel: llama3\ndatabase:\n  driver: postgres\n  dsn: postgres://localhost/cr360\nretry:\n  syntax: 4\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOllama {
		t.Errorf("expected provider ollama, got %q", cfg.Provider)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected driver postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Retry.Syntax != 4 {
		t.Errorf("expected syntax budget 4, got %d", cfg.Retry.Syntax)
	}
	// Untouched keys keep defaults.
	if cfg.Retry.Semantic != 1 {
		t.Errorf("expected semantic budget 1, got %d", cfg.Retry.Semantic)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CR360_MODEL", "gpt-4o")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("expected env override gpt-4o, got %q", cfg.Model)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty provider", func(c *Config) { c.Provider = "" }},
		{"unknown provider", func(c *Config) { c.Provider = "bedrock" }},
		{"empty model", func(c *Config) { c.Model = "" }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }},
		{"zero max rows", func(c *Config) { c.Database.MaxRows = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }},
		{"negative budget", func(c *Config) { c.Retry.Syntax = -1 }},
		{"zero turns", func(c *Config) { c.Memory.MaxTurns = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
