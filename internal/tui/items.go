package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/palette/internal/command"
)

type suggestionItem struct {
	command.Suggestion
}

func (i suggestionItem) FilterValue() string { return i.Suggestion.Title }

func toItems(suggestions []command.Suggestion) []list.Item {
	out := make([]list.Item, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, suggestionItem{s})
	}
	return out
}

// suggestionDelegate renders a suggestion as title plus subtitle, with the
// icon's file name as a marker.
type suggestionDelegate struct{}

func (suggestionDelegate) Height() int                         { return 2 }
func (suggestionDelegate) Spacing() int                        { return 0 }
func (suggestionDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (suggestionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(suggestionItem)
	if !ok {
		return
	}
	cursor := "  "
	title := titleStyle.Render(it.Suggestion.Title)
	if index == m.Index() {
		cursor = selectedStyle.Render("> ")
		title = selectedStyle.Render(it.Suggestion.Title)
	}
	icon := ""
	if it.IconPath != "" {
		icon = " " + iconStyle.Render("["+strings.TrimSuffix(filepath.Base(it.IconPath), filepath.Ext(it.IconPath))+"]")
	}
	fmt.Fprintf(w, "%s%s%s\n  %s", cursor, title, icon, subtitleStyle.Render(it.Subtitle))
}
