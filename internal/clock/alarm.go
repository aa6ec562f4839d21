package clock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jask/palette/internal/command"
	"github.com/jask/palette/internal/database/repository"
)

const clearAll = "all"

// parseClock turns HH:MM into minutes since midnight.
func parseClock(raw string) (int, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, command.Invalid("%q is not a valid time, use HH:MM (00:00-23:59)", raw)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (p *plugin) suggestSet(_ context.Context, c *command.Command, tokens []string) []command.Suggestion {
	if len(tokens) <= c.Depth() {
		return []command.Suggestion{command.Hint(c, "Type a time", "e.g. "+c.CommandPath()+" 07:30 wake up")}
	}
	raw := tokens[c.Depth()]
	label := strings.Join(tokens[c.Depth()+1:], " ")
	subtitle := "Press enter to confirm"
	if label != "" {
		subtitle = fmt.Sprintf("%q, press enter to confirm", label)
	}
	return []command.Suggestion{command.SelfSuggestion(c, tokens, "Set alarm for "+raw, subtitle)}
}

func (p *plugin) runSet(ctx context.Context, c *command.Command, tokens []string) (command.Outcome, error) {
	at, err := parseClock(tokens[c.Depth()])
	if err != nil {
		return command.Outcome{}, err
	}
	label := strings.Join(tokens[c.Depth()+1:], " ")
	if _, err := p.store.Create(ctx, at, label); err != nil {
		return command.Outcome{}, err
	}
	return command.Outcome{}, nil
}

func (p *plugin) suggestList(ctx context.Context, c *command.Command, _ []string) []command.Suggestion {
	alarms, err := p.store.List(ctx)
	if err != nil {
		return []command.Suggestion{command.Hint(c, "Could not load alarms", err.Error())}
	}
	if len(alarms) == 0 {
		return []command.Suggestion{command.Hint(c, "No alarms set", "Add one with "+c.Parent().CommandPath()+" set HH:MM")}
	}
	out := make([]command.Suggestion, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, command.Hint(c, alarmTitle(a), a.ShortID()))
	}
	return out
}

func (p *plugin) suggestClear(ctx context.Context, c *command.Command, tokens []string) []command.Suggestion {
	alarms, err := p.store.List(ctx)
	if err != nil {
		return []command.Suggestion{command.Hint(c, "Could not load alarms", err.Error())}
	}
	filter := ""
	if len(tokens) > c.Depth() {
		filter = strings.ToLower(tokens[c.Depth()])
	}
	base := tokens[:min(len(tokens), c.Depth())]
	withArg := func(arg string) []string {
		return append(append([]string(nil), base...), arg)
	}

	var out []command.Suggestion
	for _, a := range alarms {
		if filter != "" && !strings.Contains(a.ShortID(), filter) && !strings.Contains(strings.ToLower(a.Label), filter) {
			continue
		}
		out = append(out, command.SelfSuggestion(c, withArg(a.ShortID()), "Clear "+alarmTitle(a), a.ShortID()))
	}
	if len(alarms) > 0 && strings.Contains(clearAll, filter) {
		out = append(out, command.SelfSuggestion(c, withArg(clearAll), "Clear all alarms", fmt.Sprintf("%d alarm(s)", len(alarms))))
	}
	if len(out) == 0 && filter != "" {
		// still selectable so the user gets the validation message
		out = append(out, command.SelfSuggestion(c, tokens, "Clear "+tokens[c.Depth()], "No alarm matches"))
	}
	if len(out) == 0 {
		out = append(out, command.Hint(c, "No alarms set", "Nothing to clear"))
	}
	return out
}

func (p *plugin) runClear(ctx context.Context, c *command.Command, tokens []string) (command.Outcome, error) {
	arg := strings.ToLower(tokens[c.Depth()])
	if arg == clearAll {
		_, err := p.store.DeleteAll(ctx)
		return command.Outcome{}, err
	}
	alarms, err := p.store.List(ctx)
	if err != nil {
		return command.Outcome{}, err
	}
	var matches []repository.Alarm
	for _, a := range alarms {
		if strings.HasPrefix(strings.ToLower(a.ID), arg) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return command.Outcome{}, command.Invalid("no alarm id starts with %q", arg)
	case 1:
		return command.Outcome{}, p.store.Delete(ctx, matches[0].ID)
	default:
		return command.Outcome{}, command.Invalid("%q matches %d alarms, type more of the id", arg, len(matches))
	}
}

func alarmTitle(a repository.Alarm) string {
	if a.Label == "" {
		return a.Clock()
	}
	return a.Clock() + "  " + a.Label
}
