package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Construction errors returned by NewTree.
var (
	// ErrEmptyAlias marks a non-root command without an alias.
	ErrEmptyAlias = errors.New("command alias is empty")
	// ErrInvalidAlias marks an alias that would not survive tokenizing.
	ErrInvalidAlias = errors.New("command alias contains whitespace")
	// ErrDuplicateAlias marks siblings whose aliases differ only in case.
	ErrDuplicateAlias = errors.New("duplicate command alias")
	// ErrCycle marks a command attached at more than one place.
	ErrCycle = errors.New("command reachable more than once")
	// ErrNilCommand marks a nil root or child.
	ErrNilCommand = errors.New("nil command")
)

// SuggestFunc replaces the default child-listing policy of a command.
type SuggestFunc func(ctx context.Context, c *Command, tokens []string) []Suggestion

// RunFunc is a command's own execution logic. Returning a *ValidationError
// marks the input as correctable; any other error is passed to the host.
type RunFunc func(ctx context.Context, c *Command, tokens []string) (Outcome, error)

// Command is one node of the dispatch tree.
type Command struct {
	Alias       string
	Title       string
	Description string
	Icon        string
	Children    []*Command
	Suggest     SuggestFunc
	Run         RunFunc

	parent *Command
	depth  int
	plugin *Plugin
}

// Host owns the input box the user types into.
type Host interface {
	ChangeQuery(query string, submit bool)
}

// Plugin is the context shared by every command of one tree.
type Plugin struct {
	ActionKeyword string
	IconPath      string
	Host          Host
	Logger        *log.Logger
}

// Suggestion is a display-ready entry produced by Query.
type Suggestion struct {
	Title    string
	Subtitle string
	IconPath string
	Action   func(ctx context.Context) (Result, error)
}

// Select runs the suggestion's action. Suggestions without an action
// leave the host untouched.
func (s Suggestion) Select(ctx context.Context) (Result, error) {
	if s.Action == nil {
		return Result{}, nil
	}
	return s.Action(ctx)
}

// Outcome is what a RunFunc reports on success.
type Outcome struct {
	Hide bool
	// KeepQuery suppresses the default requery of the command path.
	KeepQuery bool
}

// Result is what Execute reports back to the host.
type Result struct {
	Hide           bool
	ForcedTitle    string
	ForcedSubtitle string
}

// Failed reports whether the result carries a validation banner.
func (r Result) Failed() bool { return r.ForcedTitle != "" }

// Tree is a validated, immutable command hierarchy.
type Tree struct {
	root   *Command
	plugin *Plugin
}

// NewTree wires parent links and depths below root and validates aliases.
// Root itself needs no alias. The declared Children slices must not be
// modified afterwards.
func NewTree(plugin *Plugin, root *Command) (*Tree, error) {
	if root == nil {
		return nil, ErrNilCommand
	}
	if plugin == nil {
		plugin = &Plugin{}
	}
	if plugin.Logger == nil {
		plugin.Logger = log.Default()
	}
	root.parent = nil
	root.depth = 0
	root.plugin = plugin
	seen := map[*Command]bool{root: true}
	if err := wire(root, seen); err != nil {
		return nil, err
	}
	return &Tree{root: root, plugin: plugin}, nil
}

func wire(c *Command, seen map[*Command]bool) error {
	aliases := make(map[string]string, len(c.Children))
	for i, child := range c.Children {
		if child == nil {
			return fmt.Errorf("%s child %d: %w", c.label(), i, ErrNilCommand)
		}
		alias := child.Alias
		switch {
		case strings.TrimSpace(alias) == "":
			return fmt.Errorf("%s child %d: %w", c.label(), i, ErrEmptyAlias)
		case strings.ContainsAny(alias, " \t\r\n"):
			return fmt.Errorf("%s child %q: %w", c.label(), alias, ErrInvalidAlias)
		}
		key := strings.ToLower(alias)
		if prev, ok := aliases[key]; ok {
			return fmt.Errorf("%s: %q and %q: %w", c.label(), prev, alias, ErrDuplicateAlias)
		}
		aliases[key] = alias
		if seen[child] {
			return fmt.Errorf("%s child %q: %w", c.label(), alias, ErrCycle)
		}
		seen[child] = true
		child.parent = c
		child.depth = c.depth + 1
		child.plugin = c.plugin
		if err := wire(child, seen); err != nil {
			return err
		}
	}
	return nil
}

func (c *Command) label() string {
	if c.parent == nil {
		return "root"
	}
	return fmt.Sprintf("command %q", c.Alias)
}

func (c *Command) Parent() *Command { return c.parent }

// Depth is the number of aliases between the root and c. The root is 0.
func (c *Command) Depth() int { return c.depth }

func (c *Command) Plugin() *Plugin { return c.plugin }

// Find returns the child whose alias equals alias, ignoring case.
func (c *Command) Find(alias string) (*Command, bool) {
	for _, child := range c.Children {
		if strings.EqualFold(child.Alias, alias) {
			return child, true
		}
	}
	return nil, false
}

func (c *Command) logger() *log.Logger {
	if c.plugin == nil || c.plugin.Logger == nil {
		return log.Default()
	}
	return c.plugin.Logger
}

func (t *Tree) Root() *Command { return t.root }

func (t *Tree) Plugin() *Plugin { return t.plugin }

// Query resolves tokens from the root.
func (t *Tree) Query(ctx context.Context, tokens []string) []Suggestion {
	return t.root.Query(ctx, tokens)
}

// Resolve follows exact alias matches as far as tokens allow and returns
// the deepest command reached.
func (t *Tree) Resolve(tokens []string) *Command {
	c := t.root
	for c.depth < len(tokens) {
		next, ok := c.Find(tokens[c.depth])
		if !ok {
			break
		}
		c = next
	}
	return c
}

// Walk visits every command depth-first in declaration order, root first.
func (t *Tree) Walk(fn func(c *Command) error) error {
	return walk(t.root, fn)
}

func walk(c *Command, fn func(c *Command) error) error {
	if err := fn(c); err != nil {
		return err
	}
	for _, child := range c.Children {
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}
