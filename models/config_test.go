package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Listen != DefaultListenAddr {
		t.Errorf("Listen = %q, want %q", cfg.Listen, DefaultListenAddr)
	}
	if got := cfg.FetchTimeoutDuration(); got != DefaultFetchTimeout {
		t.Errorf("FetchTimeoutDuration() = %v, want %v", got, DefaultFetchTimeout)
	}
	if len(cfg.Languages) < 2 {
		t.Errorf("Languages = %v, want at least two defaults", cfg.Languages)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `listen: 0.0.0.0:9000
fetch_timeout: 5s
languages: [en, ja]
ai:
  provider: openai
  model: gpt-4o-mini
  api_key: from-file
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if got := cfg.FetchTimeoutDuration(); got != 5*time.Second {
		t.Errorf("FetchTimeoutDuration() = %v, want 5s", got)
	}
	if cfg.AI == nil || cfg.AI.Provider != "openai" {
		t.Fatalf("AI = %+v", cfg.AI)
	}
	if got := cfg.AIKey(); got != "from-file" {
		t.Errorf("AIKey() = %q, want from-file", got)
	}
}

func TestAIKey_EnvFallback(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")
	cfg := &Config{}
	if got := cfg.AIKey(); got != "from-env" {
		t.Errorf("AIKey() = %q, want from-env", got)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("listen: [unclosed"), 0o644)
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() with bad YAML should fail")
	}
}
