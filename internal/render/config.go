package render

import (
	"os"

	"github.com/moecatalyst/moechat/internal/config"
)

// EnvStyle overrides the markdown style from the environment
const EnvStyle = "GLAMOUR_STYLE"

// OptionsFromConfig builds render options from user configuration.
// GLAMOUR_STYLE takes precedence over the config file.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions().FromMarkdownConfig(cfg.Markdown)

	if style := os.Getenv(EnvStyle); style != "" {
		opts.Style = style
	}

	return opts
}

// OptionsFromConfigWithWidth is OptionsFromConfig with a wrap width.
func OptionsFromConfigWithWidth(cfg config.Config, width int) Options {
	return OptionsFromConfig(cfg).WithWidth(width)
}
