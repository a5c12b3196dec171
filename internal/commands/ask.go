package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moecatalyst/moechat/internal/conversation"
	"github.com/moecatalyst/moechat/internal/models"
	"github.com/moecatalyst/moechat/internal/render"
	"github.com/moecatalyst/moechat/internal/tui"
)

// errReported marks failures already shown to the user
var errReported = errors.New("request failed")

// askFlags are the flags of one-shot mode
type askFlags struct {
	file   string
	output string
	raw    bool
	json   bool
}

func (f *askFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the message from a file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Save the reply to a file")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "Print only the reply text (default when stdout is not a terminal)")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the exchange as JSON")
}

// NewAskCmd creates the one-shot command
func NewAskCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	af := &askFlags{}
	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a single message and print the reply",
		Long: `Send one message to the chat endpoint and print the reply.

The message is taken from the argument, from --file, or from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps.withDefaults()
			message, ok, err := readMessage(d, af, args)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no message given")
			}
			return runAsk(cmd.Context(), d, flags, af, message)
		},
	}
	af.register(cmd)
	return cmd
}

// readMessage picks the message from --file, the argument or piped stdin.
// ok is false when none of them supplied input. A stdin pipe that closes
// without data counts as no input.
func readMessage(deps *Dependencies, af *askFlags, args []string) (string, bool, error) {
	if af.file != "" {
		data, err := os.ReadFile(af.file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if hasPipedInput(deps.Stdin) {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) == 0 {
			return "", false, nil
		}
		return string(data), true, nil
	}

	return "", false, nil
}

// hasPipedInput reports whether r is a pipe, a redirected file or a
// non-empty in-memory reader
func hasPipedInput(r io.Reader) bool {
	if r == nil {
		return false
	}
	if buf, ok := r.(interface{ Len() int }); ok {
		return buf.Len() > 0
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// runAsk sends message through the pipeline and prints the assistant reply
func runAsk(ctx context.Context, deps *Dependencies, flags *globalFlags, af *askFlags, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := newRuntime(deps, flags)
	if err != nil {
		return err
	}
	defer rt.Close()

	raw := af.raw || af.json || !deps.IsTTY()

	var spin *spinner
	if !raw {
		spin = newSpinner(deps.Stderr, rt.strings.Thinking)
		spin.start()
	}

	out, _ := rt.pipeline.Submit(ctx, message)

	if spin != nil {
		if out.Failed() {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess(fmt.Sprintf("%s (%s)", models.ProductName, out.Duration))
		}
	}

	text := out.Message.Text
	if af.json {
		data, err := rt.pipeline.Conversation().ExportToJSON(conversation.ExportOptionsFor(rt.strings))
		if err != nil {
			return err
		}
		text = string(data) + "\n"
	}

	if err := deliver(deps, rt, af, text, raw); err != nil {
		return err
	}

	if out.Failed() {
		if !raw {
			fmt.Fprintln(deps.Stderr, formatErrorMessage(out.Err, "Request failed"))
		}
		return errReported
	}
	return nil
}

// deliver writes the reply to the output file, the clipboard and the terminal
func deliver(deps *Dependencies, rt *runtime, af *askFlags, text string, raw bool) error {
	if af.output != "" {
		if err := os.WriteFile(af.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !raw {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Reply saved to %s", af.output)))
		}
	}

	if rt.cfg.CopyToClipboard && !af.json {
		if err := deps.Clipboard(text); err != nil {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorFailure).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else if !raw {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if af.output != "" {
		return nil
	}

	if raw {
		_, err := fmt.Fprint(deps.Stdout, text)
		return err
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	theme := render.GetTUITheme()
	label := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render("✦ " + rt.strings.AssistantLabel)
	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.AssistantBubble).
		Foreground(theme.AssistantText).
		Padding(0, 1).
		Render(render.Reply(text, render.OptionsFromConfigWithWidth(rt.cfg, bubbleWidth-4)))

	fmt.Fprintln(deps.Stdout, label)
	fmt.Fprintln(deps.Stdout, bubble)
	return nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// formatErrorMessage prefixes err with context and adds the structured details
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}
	return tui.FormatError(fmt.Errorf("%s: %w", context, err))
}
