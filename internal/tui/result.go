package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// ResultLabel shows the record of the current selection. It wraps text to
// its width and scrolls when the record is taller than the pane.
type ResultLabel struct {
	viewport viewport.Model
	text     string
}

func NewResultLabel() *ResultLabel {
	r := &ResultLabel{}
	r.SetSize(20, 10)
	return r
}

// SetText replaces the displayed text.
func (r *ResultLabel) SetText(text string) {
	r.text = text
	r.render()
	r.viewport.GotoTop()
}

func (r *ResultLabel) Text() string { return r.text }

func (r *ResultLabel) SetSize(width, height int) {
	r.viewport.Width = max(width, 1)
	r.viewport.Height = max(height, 1)
	r.render()
}

func (r *ResultLabel) render() {
	if r.text == "" {
		r.viewport.SetContent("")
		return
	}
	r.viewport.SetContent(lipgloss.NewStyle().Width(r.viewport.Width).Render(r.text))
}

func (r *ResultLabel) View() string {
	return r.viewport.View()
}
