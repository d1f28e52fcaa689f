package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Document.Filename != "Bashfile" {
		t.Errorf("expected default filename Bashfile, got %q", cfg.Document.Filename)
	}
	if cfg.Document.MaxDepth != 4 {
		t.Errorf("expected default max depth 4, got %d", cfg.Document.MaxDepth)
	}
	if cfg.Shell.Path != "bash" {
		t.Errorf("expected default shell bash, got %q", cfg.Shell.Path)
	}
	if !cfg.Shell.Interactive {
		t.Error("expected interactive shell by default")
	}
	if cfg.Resolution.LegacyOrder {
		t.Error("legacy resolution order must be opt-in")
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Document.Filename != "Bashfile" {
		t.Errorf("expected Bashfile from defaults, got %q", cfg.Document.Filename)
	}
	if cfg.Logging.Level != "WARN" {
		t.Errorf("expected WARN log level from defaults, got %q", cfg.Logging.Level)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("document.filename", "Tasks")
	viper.Set("resolution.legacy_order", true)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Document.Filename != "Tasks" {
		t.Errorf("expected override Tasks, got %q", cfg.Document.Filename)
	}
	if !cfg.Resolution.LegacyOrder {
		t.Error("expected legacy_order override to apply")
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := ConfigDir(); got != "/tmp/xdg/bake" {
		t.Errorf("expected /tmp/xdg/bake, got %q", got)
	}
}
