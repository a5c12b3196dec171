// Package render turns assistant replies into styled terminal output.
package render

import "github.com/moecatalyst/moechat/internal/config"

// Options configures the markdown renderer.
type Options struct {
	// Width is the word wrap column (default: 80)
	Width int

	// Style is a glamour style name or a path to a JSON style file
	Style string

	// EnableEmoji converts :emoji: shortcodes
	EnableEmoji bool

	// PreserveNewLines keeps single line breaks from the reply
	PreserveNewLines bool

	// TableWrap wraps text inside table cells
	TableWrap bool

	// InlineTableLinks renders links inline in tables
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// FromMarkdownConfig copies the markdown section of the user configuration.
// An empty style keeps the current one.
func (o Options) FromMarkdownConfig(md config.MarkdownConfig) Options {
	if md.Style != "" {
		o.Style = md.Style
	}
	o.EnableEmoji = md.EnableEmoji
	o.PreserveNewLines = md.PreserveNewLines
	o.TableWrap = md.TableWrap
	o.InlineTableLinks = md.InlineTableLinks
	return o
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithEmoji returns Options with emoji shortcodes enabled or disabled.
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// WithPreserveNewLines returns Options with newline preservation set.
func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}
