package clock

import (
	"context"
	"time"

	"github.com/jask/palette/internal/command"
)

func (p *plugin) zone(tokens []string, c *command.Command) (*time.Location, error) {
	if len(tokens) <= c.Depth() {
		return p.location, nil
	}
	name := tokens[c.Depth()]
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, command.Invalid("unknown time zone %q", name)
	}
	return loc, nil
}

func (p *plugin) suggestTime(_ context.Context, c *command.Command, tokens []string) []command.Suggestion {
	loc, err := p.zone(tokens, c)
	if err != nil {
		return []command.Suggestion{command.SelfSuggestion(c, tokens, tokens[c.Depth()], err.Error())}
	}
	now := p.now().In(loc)
	return []command.Suggestion{command.SelfSuggestion(c, tokens, now.Format(p.format), loc.String()+" "+now.Format("Mon 2 Jan"))}
}

// runTime only validates the zone; a valid pick closes the palette.
func (p *plugin) runTime(_ context.Context, c *command.Command, tokens []string) (command.Outcome, error) {
	if _, err := p.zone(tokens, c); err != nil {
		return command.Outcome{}, err
	}
	return command.Outcome{Hide: true, KeepQuery: true}, nil
}
