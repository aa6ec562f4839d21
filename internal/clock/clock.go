// Package clock is the palette's built-in plugin: alarms and world time.
package clock

import (
	"context"
	"time"

	"github.com/jask/palette/internal/command"
	"github.com/jask/palette/internal/database/repository"
)

// Store persists alarms.
type Store interface {
	Create(ctx context.Context, at int, label string) (repository.Alarm, error)
	List(ctx context.Context) ([]repository.Alarm, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
}

// Settings controls presentation.
type Settings struct {
	TimeFormat string
	Location   *time.Location
	Now        func() time.Time
}

type plugin struct {
	store    Store
	format   string
	location *time.Location
	now      func() time.Time
}

// Commands returns the root of the clock command tree. The caller wires it
// with command.NewTree.
func Commands(store Store, s Settings) *command.Command {
	p := &plugin{store: store, format: s.TimeFormat, location: s.Location, now: s.Now}
	if p.format == "" {
		p.format = "15:04"
	}
	if p.location == nil {
		p.location = time.Local
	}
	if p.now == nil {
		p.now = time.Now
	}
	return &command.Command{
		Title: "Clock",
		Children: []*command.Command{
			{
				Alias:       "alarm",
				Title:       "Alarms",
				Description: "Set, list and clear alarms",
				Icon:        "icons/alarm.png",
				Children: []*command.Command{
					{
						Alias:       "set",
						Title:       "Set alarm",
						Description: "clock alarm set HH:MM [label]",
						Suggest:     p.suggestSet,
						Run:         p.runSet,
					},
					{
						Alias:       "list",
						Title:       "List alarms",
						Description: "Show every alarm",
						Suggest:     p.suggestList,
					},
					{
						Alias:       "clear",
						Title:       "Clear alarm",
						Description: "clock alarm clear <id|all>",
						Suggest:     p.suggestClear,
						Run:         p.runClear,
					},
				},
			},
			{
				Alias:       "time",
				Title:       "Current time",
				Description: "clock time [zone]",
				Suggest:     p.suggestTime,
				Run:         p.runTime,
			},
		},
	}
}
