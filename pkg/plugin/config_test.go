package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"DevKit/internal/errors"
)

func TestLoadManagerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.yaml")
	raw := `plugins:
  test-plugin:
    enabled: true
    config:
      timestamp: "2020-02-02T00:00:00Z"
  factorial:
    enabled: false
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadManagerConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block, ok := cfg.Plugins["test-plugin"]
	if !ok || !block.Enabled {
		t.Fatalf("test-plugin block missing or disabled: %+v", cfg.Plugins)
	}
	if block.Config["timestamp"] != "2020-02-02T00:00:00Z" {
		t.Fatalf("config block not parsed: %+v", block.Config)
	}
	if cfg.Plugins["factorial"].Enabled {
		t.Fatalf("factorial should be disabled")
	}
}

func TestLoadManagerConfigEmptyPath(t *testing.T) {
	if _, err := LoadManagerConfig(""); errors.CodeOf(err) != errors.CodeMissingArgument {
		t.Fatalf("expected MISSING_ARGUMENT, got %v", err)
	}
}

func TestLoadManagerConfigMissingFile(t *testing.T) {
	if _, err := LoadManagerConfig(filepath.Join(t.TempDir(), "absent.yaml")); errors.CodeOf(err) != errors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLoadManagerConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.yaml")
	if err := os.WriteFile(path, []byte("plugins: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadManagerConfig(path); errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}
