package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/palette/internal/tui"
)

var (
	// Version is set via -ldflags.
	Version = "dev"
)

type rootFlags struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "A keyword-driven command palette",
		Long: `palette resolves what you type against a tree of commands.

The first word is the action keyword ("clock" by default); each further
word picks a subcommand, and the rest are arguments:

  clock alarm set 07:30 wake up
  clock alarm list
  clock time Europe/Paris`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.config/palette/config.toml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newQueryCmd(flags), newExecCmd(flags), newTreeCmd(flags), newConfigCmd(flags))
	return cmd
}

func runTUI(ctx context.Context, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := setup(flags.setupOptions(false))
	if err != nil {
		return err
	}
	defer p.Close()

	app := tui.New(ctx, p.tree, tui.Options{PageSize: p.cfg.UI.PageSize, Logger: p.logger})
	p.plugin.Host = app

	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
