package tui

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jask/paintingdb/internal/logging"
	"github.com/jask/paintingdb/internal/selector"
)

// Pane is one list in the chain, in parent-to-child order.
type Pane struct {
	Title    string
	List     *ScrollList
	Selector *selector.Selector
}

// App ties the selector panes and the result panel together.
type App struct {
	ctx         context.Context
	logger      zerolog.Logger
	keys        KeyMap
	panes       []Pane
	result      *ResultLabel
	resultTitle string

	focus  int
	width  int
	height int
	status string

	// jump prompt
	jumping   bool
	jumpInput string
}

func New(ctx context.Context, logger zerolog.Logger, panes []Pane, result *ResultLabel, resultTitle string) *App {
	a := &App{
		ctx:         ctx,
		logger:      logger.With().Str("component", "tui").Logger(),
		keys:        DefaultKeyMap,
		panes:       panes,
		result:      result,
		resultTitle: resultTitle,
	}
	a.layout(80, 24)
	return a
}

// Focus is the index of the focused pane.
func (a *App) Focus() int { return a.focus }

func (a *App) Status() string { return a.status }

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.layout(m.Width, m.Height)
		return a, nil
	case tea.KeyMsg:
		if a.jumping {
			return a.handleJumpKey(m)
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(a.panes) == 0 {
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}
	list := a.panes[a.focus].List
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.NextPane):
		a.focus = (a.focus + 1) % len(a.panes)
	case key.Matches(m, a.keys.PrevPane):
		a.focus = (a.focus + len(a.panes) - 1) % len(a.panes)
	case key.Matches(m, a.keys.Up):
		a.moved(list.Move(-1))
	case key.Matches(m, a.keys.Down):
		a.moved(list.Move(1))
	case key.Matches(m, a.keys.PageUp):
		a.moved(list.PageUp())
	case key.Matches(m, a.keys.PageDown):
		a.moved(list.PageDown())
	case key.Matches(m, a.keys.Home):
		a.moved(list.Home())
	case key.Matches(m, a.keys.End):
		a.moved(list.End())
	case key.Matches(m, a.keys.Jump):
		a.jumping = true
		a.jumpInput = ""
	case key.Matches(m, a.keys.Reload):
		a.reload()
	}
	return a, nil
}

func (a *App) handleJumpKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.jumping = false
		a.jumpInput = ""
		return a, nil
	case key.Matches(m, a.keys.Confirm):
		query := a.jumpInput
		a.jumping = false
		a.jumpInput = ""
		if len(a.panes) == 0 {
			return a, nil
		}
		list := a.panes[a.focus].List
		if nearest(list.Items(), query) < 0 {
			a.status = fmt.Sprintf("no match for %q", query)
			return a, nil
		}
		a.moved(list.SelectNearest(query))
		return a, nil
	}

	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.jumpInput) > 0 {
			r := []rune(a.jumpInput)
			a.jumpInput = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.jumpInput += " "
	case tea.KeyRunes:
		a.jumpInput += string(m.Runes)
	case tea.KeyCtrlC:
		return a, tea.Quit
	}
	return a, nil
}

// moved fires the selection event of the focused pane when its cursor
// actually changed. Every query it triggers shares one interaction id.
func (a *App) moved(changed bool) {
	if !changed {
		return
	}
	pane := a.panes[a.focus]
	ctx := logging.WithInteraction(a.ctx)
	if err := pane.Selector.OnSelectionChanged(ctx); err != nil {
		a.fail(ctx, "selection failed", err)
		return
	}
	a.status = ""
}

func (a *App) reload() {
	ctx := logging.WithInteraction(a.ctx)
	if err := a.panes[0].Selector.ReQuery(ctx, sql.NullInt64{}); err != nil {
		a.fail(ctx, "reload failed", err)
		return
	}
	a.focus = 0
	a.status = "reloaded"
}

// fail aborts the current interaction only; the UI keeps running.
func (a *App) fail(ctx context.Context, msg string, err error) {
	a.logger.Error().Err(err).Str("interaction", logging.Interaction(ctx)).Msg(msg)
	a.status = "error: " + err.Error()
}

// layout gives every pane and the result equal-weight columns
// plus a half-weight spacer on the right.
func (a *App) layout(width, height int) {
	a.width, a.height = width, height
	cols := len(a.panes) + 1
	colWidth := max(width*2/(2*cols+1), 8)
	inner := max(colWidth-2, 4)
	// title, borders, footer and status
	innerHeight := max(height-6, 1)
	for _, p := range a.panes {
		p.List.SetSize(inner, innerHeight)
	}
	if a.result != nil {
		a.result.SetSize(inner, innerHeight)
	}
}

// styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	focusedBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12"))
	blurredBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
	columnMargin = lipgloss.NewStyle().MarginLeft(2)
)

func (a *App) View() string {
	var cols []string
	for i, p := range a.panes {
		box := blurredBox
		if i == a.focus {
			box = focusedBox
		}
		cols = append(cols, columnMargin.Render(titleStyle.Render(p.Title)+"\n"+box.Render(p.List.View(i == a.focus))))
	}
	if a.result != nil {
		cols = append(cols, columnMargin.Render(titleStyle.Render(a.resultTitle)+"\n"+blurredBox.Render(a.result.View())))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	out += "\n" + a.footer()
	if a.jumping {
		out += "\n" + promptStyle.Render("jump: ") + a.jumpInput
	} else if a.status != "" {
		if strings.HasPrefix(a.status, "error:") {
			out += "\n" + errorStyle.Render(a.status)
		} else {
			out += "\n" + a.status
		}
	}
	return out
}

func (a *App) footer() string {
	var parts []string
	for _, b := range a.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}
