package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jask/palette/internal/command"
)

// App is the palette host: it owns the input box, shows the suggestions the
// command tree produces and applies the query changes the tree requests.
type App struct {
	ctx     context.Context
	tree    *command.Tree
	keyword string
	logger  *log.Logger

	input  textinput.Model
	list   list.Model
	width  int
	height int

	forced  command.Result
	hint    string
	status  string
	pending *queryChange
}

type queryChange struct {
	query  string
	submit bool
}

// Options configures a new App.
type Options struct {
	PageSize int
	Logger   *log.Logger
}

// New builds the host. The caller must install the returned App as the
// tree's command.Host before the first query.
func New(ctx context.Context, tree *command.Tree, opts Options) *App {
	if opts.PageSize <= 0 {
		opts.PageSize = 8
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	inp := textinput.New()
	inp.Placeholder = "Type a command"
	inp.Prompt = "> "
	inp.Focus()

	lst := list.New(nil, suggestionDelegate{}, 64, opts.PageSize*suggestionDelegate{}.Height())
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.DisableQuitKeybindings()

	a := &App{
		ctx:     ctx,
		tree:    tree,
		keyword: tree.Plugin().ActionKeyword,
		logger:  opts.Logger,
		input:   inp,
		list:    lst,
	}
	a.setQuery(a.keyword + " ")
	return a
}

// ChangeQuery implements command.Host. The change is applied once the
// current key has been handled.
func (a *App) ChangeQuery(query string, submit bool) {
	a.pending = &queryChange{query: query, submit: submit}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.list.SetWidth(max(20, m.Width-4))
		return a, nil
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "up", "ctrl+p", "shift+tab":
			a.list.CursorUp()
			return a, nil
		case "down", "ctrl+n", "tab":
			a.list.CursorDown()
			return a, nil
		case "pgup":
			a.list.Paginator.PrevPage()
			a.list.Select(a.list.Paginator.Page * a.list.Paginator.PerPage)
			return a, nil
		case "pgdown":
			a.list.Paginator.NextPage()
			a.list.Select(a.list.Paginator.Page * a.list.Paginator.PerPage)
			return a, nil
		case "enter":
			return a.selectCurrent()
		}
	}
	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() != before {
		a.forced = command.Result{}
		a.status = ""
		a.refresh()
	}
	return a, cmd
}

func (a *App) selectCurrent() (tea.Model, tea.Cmd) {
	for range 2 {
		it, ok := a.list.SelectedItem().(suggestionItem)
		if !ok {
			return a, nil
		}
		res, err := it.Select(a.ctx)
		if err != nil {
			a.logger.Error("command failed", "query", a.input.Value(), "error", err)
			a.status = "error: " + err.Error()
			a.pending = nil
			return a, nil
		}
		a.forced = res
		change := a.pending
		a.pending = nil
		if change != nil {
			a.setQuery(change.query)
		}
		if res.Hide {
			return a, tea.Quit
		}
		if change == nil || !change.submit {
			return a, nil
		}
	}
	return a, nil
}

// setQuery replaces the input and re-runs the query. Keyword-only input
// keeps a trailing space so typing can continue.
func (a *App) setQuery(q string) {
	if strings.EqualFold(strings.TrimSpace(q), a.keyword) {
		q = a.keyword + " "
	}
	a.input.SetValue(q)
	a.input.CursorEnd()
	a.refresh()
}

func (a *App) refresh() {
	a.hint = ""
	tokens, ok := command.Tokenize(a.input.Value(), a.keyword)
	if !ok {
		a.list.SetItems(nil)
		a.hint = "Start with \"" + a.keyword + "\""
		return
	}
	suggestions := a.tree.Query(a.ctx, tokens)
	a.list.SetItems(toItems(suggestions))
	if a.list.Index() >= len(suggestions) {
		a.list.Select(0)
	}
	if len(suggestions) == 0 {
		a.hint = didYouMean(a.tree, tokens)
	}
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(a.tree.Root().Title))
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")
	if a.forced.Failed() {
		b.WriteString(errorStyle.Render(a.forced.ForcedTitle))
		b.WriteString("\n  ")
		b.WriteString(subtitleStyle.Render(a.forced.ForcedSubtitle))
		b.WriteString("\n\n")
	}
	if len(a.list.Items()) > 0 {
		b.WriteString(a.list.View())
		b.WriteString("\n")
	}
	if a.hint != "" {
		b.WriteString(hintStyle.Render(a.hint))
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(statusStyle.Render(a.status))
		b.WriteString("\n")
	}
	out := frameStyle.Render(strings.TrimRight(b.String(), "\n"))
	if a.width > 0 {
		out = lipgloss.PlaceHorizontal(a.width, lipgloss.Left, out)
	}
	return out
}
