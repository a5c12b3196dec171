package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/moecatalyst/moechat/internal/api"
	"github.com/moecatalyst/moechat/internal/chat"
	"github.com/moecatalyst/moechat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(pipeline *chat.Pipeline, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client overrides the HTTP client built from configuration.
	Client api.ChatClient

	// TUI is the terminal user interface.
	TUI TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Clipboard copies text to the system clipboard.
	Clipboard func(string) error

	// IsTTY reports whether stdout is a terminal.
	IsTTY func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(pipeline *chat.Pipeline, opts tui.Options) error {
	return tui.RunChat(pipeline, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:       &DefaultTUI{},
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Clipboard: clipboard.WriteAll,
		IsTTY:     isStdoutTTY,
	}
}

// withDefaults fills every nil field from NewDependencies
func (d *Dependencies) withDefaults() *Dependencies {
	defaults := NewDependencies()
	if d == nil {
		return defaults
	}
	out := *d
	if out.TUI == nil {
		out.TUI = defaults.TUI
	}
	if out.Stdin == nil {
		out.Stdin = defaults.Stdin
	}
	if out.Stdout == nil {
		out.Stdout = defaults.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = defaults.Stderr
	}
	if out.Clipboard == nil {
		out.Clipboard = defaults.Clipboard
	}
	if out.IsTTY == nil {
		out.IsTTY = defaults.IsTTY
	}
	return &out
}
