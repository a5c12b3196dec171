// Package commands provides the moechat command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	apierrors "github.com/moecatalyst/moechat/internal/errors"
	"github.com/moecatalyst/moechat/internal/models"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &globalFlags{}
	af := &askFlags{}

	cmd := &cobra.Command{
		Use:   "moechat [message]",
		Short: "Terminal chat client for " + models.ProductName,
		Long: `moechat talks to the MoECatalyst assistant.

Without input it opens the interactive chat. With a message, a file or
piped stdin it sends one message and prints the reply.

Examples:
  moechat                               Start interactive chat
  moechat "Merhaba!"                    Send a single message
  moechat -f question.md                Read the message from a file
  cat question.md | moechat             Read the message from stdin
  moechat "Hello" -o reply.md           Save the reply to a file
  moechat --endpoint http://host:5000/chat
  moechat config set locale en`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps.withDefaults()

			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(d.Stdout, "moechat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			message, ok, err := readMessage(d, af, args)
			if err != nil {
				return err
			}
			if ok {
				return runAsk(cmd.Context(), d, flags, af, message)
			}

			return runChat(cmd.Context(), d, flags)
		},
	}

	d := deps.withDefaults()
	cmd.SetIn(d.Stdin)
	cmd.SetOut(d.Stdout)
	cmd.SetErr(d.Stderr)

	cmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "Chat endpoint URL (default "+models.DefaultEndpoint+")")
	cmd.PersistentFlags().StringVar(&flags.locale, "locale", "", "Interface language: "+fmt.Sprint(models.AvailableLocales()))
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Write a diagnostic log at this level (debug, info, warn, error)")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")
	af.register(cmd)

	cmd.AddCommand(
		NewChatCmd(deps, flags),
		NewAskCmd(deps, flags),
		NewConfigCmd(deps, flags),
	)

	return cmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, NewRootCmd(NewDependencies()), os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes cmd with args and returns the process exit code
func run(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if !errors.Is(err, errReported) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		if errors.Is(err, apierrors.ErrInvalidConfig) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Run 'moechat config show' to inspect the effective settings.")
		}
	}
	return 1
}
