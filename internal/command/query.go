package command

import (
	"context"
	"strings"
)

// Query returns the suggestions for tokens as seen from c.
//
// The token at index Depth() is the next path segment. An exact alias
// match hands the whole token slice to that child; otherwise the children
// whose alias contains the segment are listed. A short query lists every
// child. A command with a Suggest hook replaces all of this.
func (c *Command) Query(ctx context.Context, tokens []string) []Suggestion {
	if c.Suggest != nil {
		return c.Suggest(ctx, c, tokens)
	}
	if len(tokens) <= c.depth {
		return c.childSuggestions(tokens, "")
	}
	segment := tokens[c.depth]
	if child, ok := c.Find(segment); ok {
		c.logger().Debug("query delegated", "from", c.label(), "to", child.Alias)
		return child.Query(ctx, tokens)
	}
	return c.childSuggestions(tokens, segment)
}

func (c *Command) childSuggestions(tokens []string, filter string) []Suggestion {
	filter = strings.ToLower(filter)
	out := make([]Suggestion, 0, len(c.Children))
	for _, child := range c.Children {
		if filter != "" && !strings.Contains(strings.ToLower(child.Alias), filter) {
			continue
		}
		out = append(out, child.suggestion(tokens))
	}
	return out
}

// suggestion describes c itself; selecting it executes c with tokens.
func (c *Command) suggestion(tokens []string) Suggestion {
	return SelfSuggestion(c, tokens, c.Title, c.Description)
}

// SelfSuggestion builds a suggestion with c's icon whose action executes c
// with tokens. Argument-taking commands use it from their Suggest hook.
func SelfSuggestion(c *Command, tokens []string, title, subtitle string) Suggestion {
	args := append([]string(nil), tokens...)
	return Suggestion{
		Title:    title,
		Subtitle: subtitle,
		IconPath: c.IconPath(),
		Action: func(ctx context.Context) (Result, error) {
			return c.Execute(ctx, args)
		},
	}
}

// Hint builds an inert suggestion, typically usage text.
func Hint(c *Command, title, subtitle string) Suggestion {
	return Suggestion{Title: title, Subtitle: subtitle, IconPath: c.IconPath()}
}
