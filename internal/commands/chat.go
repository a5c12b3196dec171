package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/moecatalyst/moechat/internal/render"
	"github.com/moecatalyst/moechat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with MoECatalyst.

Enter sends the message, Alt+Enter or Ctrl+J inserts a newline,
Ctrl+Y copies the conversation and Esc or Ctrl+C quits.
The conversation lives only as long as the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), deps.withDefaults(), flags)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies, flags *globalFlags) error {
	rt, err := newRuntime(deps, flags)
	if err != nil {
		return err
	}
	defer rt.Close()

	return deps.TUI.RunChat(rt.pipeline, tui.Options{
		Render:    render.OptionsFromConfig(rt.cfg),
		Theme:     rt.cfg.TUITheme,
		Clipboard: deps.Clipboard,
		Context:   ctx,
	})
}
