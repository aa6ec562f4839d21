package command

import "strings"

// CommandPath is the query that addresses c: the action keyword followed
// by every alias from the root down to c.
func (c *Command) CommandPath() string {
	var aliases []string
	for n := c; n != nil && n.depth > 0; n = n.parent {
		aliases = append(aliases, n.Alias)
	}
	parts := make([]string, 0, len(aliases)+1)
	parts = append(parts, c.keyword())
	for i := len(aliases) - 1; i >= 0; i-- {
		parts = append(parts, aliases[i])
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// RootQuery is the query that re-enters the tree with tokens.
func (c *Command) RootQuery(tokens []string) string {
	return JoinQuery(c.keyword(), tokens)
}

// IconPath is c's own icon, else the nearest ancestor's, else the plugin
// default.
func (c *Command) IconPath() string {
	for n := c; n != nil; n = n.parent {
		if n.Icon != "" {
			return n.Icon
		}
	}
	if c.plugin == nil {
		return ""
	}
	return c.plugin.IconPath
}

func (c *Command) keyword() string {
	if c.plugin == nil {
		return ""
	}
	return c.plugin.ActionKeyword
}

// JoinQuery formats keyword and tokens as host input.
func JoinQuery(keyword string, tokens []string) string {
	parts := make([]string, 0, len(tokens)+1)
	if keyword != "" {
		parts = append(parts, keyword)
	}
	parts = append(parts, tokens...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Tokenize splits host input on whitespace and strips the action keyword.
// ok is false when input does not start with keyword. An empty keyword
// accepts every input.
func Tokenize(input, keyword string) (tokens []string, ok bool) {
	fields := strings.Fields(input)
	if keyword == "" {
		return fields, true
	}
	if len(fields) == 0 || !strings.EqualFold(fields[0], keyword) {
		return nil, false
	}
	return fields[1:], true
}
