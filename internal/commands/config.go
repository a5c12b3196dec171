package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moecatalyst/moechat/internal/config"
	"github.com/moecatalyst/moechat/internal/render"
)

// NewConfigCmd creates the config command group
func NewConfigCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change moechat settings stored in ~/.moechat/config.json.

Environment variables (MOECHAT_ENDPOINT, MOECHAT_LOCALE, MOECHAT_LOG_LEVEL,
GLAMOUR_STYLE) and command-line flags override the file.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(deps, flags),
		newConfigPathCmd(deps),
		newConfigSetCmd(deps),
		newConfigKeysCmd(deps),
	)
	return cmd
}

func newConfigShowCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deps.withDefaults()
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(d.Stdout, string(data))
			return nil
		},
	}
}

func newConfigPathCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.withDefaults().Stdout, path)
			return nil
		},
	}
}

func newConfigSetCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: fmt.Sprintf(`Change one setting and save the config file.

Keys: %s`, strings.Join(config.Keys(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			switch key {
			case "tui_theme":
				if _, ok := render.GetTUIThemeByName(value); !ok {
					return fmt.Errorf("unknown TUI theme %q (available: %s)",
						value, strings.Join(render.TUIThemeNames(), ", "))
				}
			case "markdown.style":
				if err := render.ValidateStyle(value); err != nil {
					return err
				}
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := config.Set(&cfg, key, value); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintf(deps.withDefaults().Stdout, "%s = %s\n", key, value)
			return nil
		},
	}
}

func newConfigKeysCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the settable keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := deps.withDefaults().Stdout
			for _, key := range config.Keys() {
				fmt.Fprintln(out, key)
			}
			return nil
		},
	}
}
