package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ScrollList is a single-selection list with its own scrollbar. It starts
// with nothing selected and drops the selection whenever its items change.
type ScrollList struct {
	items  []string
	cursor int // -1 when nothing is selected
	offset int
	width  int
	height int
	bar    Scrollbar
}

func NewScrollList() *ScrollList {
	return &ScrollList{cursor: -1, width: 20, height: 10, bar: defaultScrollbar()}
}

// SetItems replaces the contents and clears the selection.
func (l *ScrollList) SetItems(items []string) {
	l.items = append(l.items[:0:0], items...)
	l.cursor = -1
	l.offset = 0
}

// Clear empties the list.
func (l *ScrollList) Clear() {
	l.items = nil
	l.cursor = -1
	l.offset = 0
}

// Selected returns the selected item.
func (l *ScrollList) Selected() (string, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return "", false
	}
	return l.items[l.cursor], true
}

func (l *ScrollList) Items() []string { return l.items }

func (l *ScrollList) Len() int { return len(l.items) }

func (l *ScrollList) Cursor() int { return l.cursor }

func (l *ScrollList) Offset() int { return l.offset }

// SetSize sets the outer size, scrollbar column included.
func (l *ScrollList) SetSize(width, height int) {
	l.width = max(width, 2)
	l.height = max(height, 1)
	l.ensureVisible()
}

// Select moves the cursor to i, clamped to the list. It reports whether the
// selection changed.
func (l *ScrollList) Select(i int) bool {
	if len(l.items) == 0 {
		return false
	}
	i = clamp(i, 0, len(l.items)-1)
	if i == l.cursor {
		return false
	}
	l.cursor = i
	l.ensureVisible()
	return true
}

// Move shifts the cursor by delta. With nothing selected any move selects
// the first item.
func (l *ScrollList) Move(delta int) bool {
	if l.cursor < 0 {
		return l.Select(0)
	}
	return l.Select(l.cursor + delta)
}

func (l *ScrollList) PageDown() bool { return l.Move(l.height) }

func (l *ScrollList) PageUp() bool { return l.Move(-l.height) }

func (l *ScrollList) Home() bool { return l.Select(0) }

func (l *ScrollList) End() bool { return l.Select(len(l.items) - 1) }

// SelectNearest selects the item closest to query. See nearest.
func (l *ScrollList) SelectNearest(query string) bool {
	i := nearest(l.items, query)
	if i < 0 {
		return false
	}
	return l.Select(i)
}

func (l *ScrollList) ensureVisible() {
	if l.cursor < 0 {
		l.offset = clamp(l.offset, 0, max(len(l.items)-l.height, 0))
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

var (
	selectedRowStyle = lipgloss.NewStyle().Reverse(true)
	blurredRowStyle  = lipgloss.NewStyle().Bold(true)
)

// View renders the visible window. focused only changes how the selected
// row is highlighted.
func (l *ScrollList) View(focused bool) string {
	textWidth := l.width - 1
	bar := l.bar.Render(l.height, len(l.items), l.offset)
	rows := make([]string, l.height)
	for i := 0; i < l.height; i++ {
		idx := l.offset + i
		text := ""
		if idx < len(l.items) {
			text = ansi.Truncate(l.items[idx], textWidth, "…")
		}
		text += strings.Repeat(" ", max(textWidth-lipgloss.Width(text), 0))
		if idx == l.cursor {
			if focused {
				text = selectedRowStyle.Render(text)
			} else {
				text = blurredRowStyle.Render(text)
			}
		}
		rows[i] = text + bar[i]
	}
	return strings.Join(rows, "\n")
}
