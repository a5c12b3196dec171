package render

import (
	"testing"

	"github.com/moecatalyst/moechat/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = StyleLight
	cfg.Markdown.EnableEmoji = false

	opts := OptionsFromConfig(cfg)
	if opts.Style != StyleLight {
		t.Errorf("expected style %q, got %q", StyleLight, opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected emoji disabled from config")
	}
	if opts.Width != 80 {
		t.Errorf("expected default width 80, got %d", opts.Width)
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvStyle, StyleDracula)

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = StyleLight

	if got := OptionsFromConfig(cfg).Style; got != StyleDracula {
		t.Errorf("expected env style %q, got %q", StyleDracula, got)
	}
}

func TestOptionsFromConfigWithWidth(t *testing.T) {
	t.Setenv(EnvStyle, "")

	opts := OptionsFromConfigWithWidth(config.DefaultConfig(), 64)
	if opts.Width != 64 {
		t.Errorf("expected width 64, got %d", opts.Width)
	}
}
