package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/palette/internal/command"
)

var errNoCommand = errors.New("no matching command")

// printHost is the command.Host for one-shot subcommands: it records the
// query a command asks for so it can be reported or re-run.
type printHost struct {
	query  string
	submit bool
	set    bool
}

func (h *printHost) ChangeQuery(query string, submit bool) {
	h.query, h.submit, h.set = query, submit, true
}

func (h *printHost) reset() { *h = printHost{} }

// queryTokens flattens CLI args into tokens, so both `query alarm set` and
// `query "alarm set"` work.
func queryTokens(args []string) []string {
	return strings.Fields(strings.Join(args, " "))
}

func newQueryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "query [words...]",
		Short: "Print the suggestions for a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := setup(flags.setupOptions(true))
			if err != nil {
				return err
			}
			defer p.Close()

			tokens := queryTokens(args)
			suggestions := p.tree.Query(cmd.Context(), tokens)
			if len(suggestions) == 0 {
				return fmt.Errorf("%q: %w", command.JoinQuery(p.plugin.ActionKeyword, tokens), errNoCommand)
			}
			printSuggestions(cmd.OutOrStdout(), suggestions)
			return nil
		},
	}
}

func printSuggestions(w io.Writer, suggestions []command.Suggestion) {
	for _, s := range suggestions {
		if s.Subtitle == "" {
			fmt.Fprintln(w, s.Title)
			continue
		}
		fmt.Fprintf(w, "%-28s %s\n", s.Title, s.Subtitle)
	}
}

func newExecCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exec words...",
		Short: "Run the deepest command the words address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := setup(flags.setupOptions(true))
			if err != nil {
				return err
			}
			defer p.Close()

			host := &printHost{}
			p.plugin.Host = host
			return execTokens(cmd, p, host, queryTokens(args))
		},
	}
}

// execTokens runs tokens and follows at most one submitted requery.
func execTokens(cmd *cobra.Command, p *palette, host *printHost, tokens []string) error {
	out := cmd.OutOrStdout()
	for range 2 {
		host.reset()
		target := p.tree.Resolve(tokens)
		if target == p.tree.Root() && len(tokens) > 0 {
			return fmt.Errorf("%q: %w", tokens[0], errNoCommand)
		}
		res, err := target.Execute(cmd.Context(), tokens)
		if err != nil {
			return err
		}
		if res.Failed() {
			fmt.Fprintln(cmd.ErrOrStderr(), res.ForcedTitle)
			return errors.New(res.ForcedSubtitle)
		}
		if !host.set {
			fmt.Fprintln(out, "done")
			return nil
		}
		if !host.submit {
			if !res.Hide {
				fmt.Fprintln(out, host.query)
				printSuggestions(out, p.tree.Query(cmd.Context(), mustTokens(host.query, p.plugin.ActionKeyword)))
			}
			return nil
		}
		tokens = mustTokens(host.query, p.plugin.ActionKeyword)
	}
	return nil
}

func mustTokens(query, keyword string) []string {
	tokens, ok := command.Tokenize(query, keyword)
	if !ok {
		return nil
	}
	return tokens
}

func newTreeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print every command path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := setup(flags.setupOptions(true))
			if err != nil {
				return err
			}
			defer p.Close()

			out := cmd.OutOrStdout()
			return p.tree.Walk(func(c *command.Command) error {
				if c.Depth() == 0 {
					_, err := fmt.Fprintln(out, c.CommandPath())
					return err
				}
				_, err := fmt.Fprintf(out, "%s%-24s %s\n", strings.Repeat("  ", c.Depth()), c.CommandPath(), c.Description)
				return err
			})
		},
	}
}
