// Package list provides the navigable item list of the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/styles"
)

// Item is one selectable row: a result, a suggestion or an index.
type Item struct {
	// Key is shown before the label (result id, suggestion key, index key).
	Key string

	// Label is the main text.
	Label string

	// Event is sent to the chat service when the item is chosen.
	Event string
}

// ItemList displays items with a highlight that follows up/down keys.
type ItemList struct {
	title    string
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewItemList creates an empty list.
func NewItemList(s *styles.Styles) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		styles: s,
		width:  80,
		height: 12,
	}
}

// Update handles list navigation keys.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
		}
	}
	return l, nil
}

// View renders the list.
func (l *ItemList) View() string {
	if len(l.items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(l.items)+2)
	if l.title != "" {
		lines = append(lines, l.styles.Subtitle.Render(l.title), "")
	}

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (l *ItemList) renderItem(index int) string {
	item := l.items[index]

	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	label := truncate(item.Label, l.width-lipgloss.Width(item.Key)-8)
	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("%s[%s] %s", indicator, item.Key, label))
	}
	return indicator + l.styles.Key.Render("["+item.Key+"]") + " " + l.styles.Normal.Render(label)
}

// truncate shortens s to at most max display cells.
func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// SetItems replaces the items and resets the highlight.
func (l *ItemList) SetItems(title string, items []Item) {
	l.title = title
	l.items = items
	l.selected = 0
}

// Clear removes every item.
func (l *ItemList) Clear() {
	l.SetItems("", nil)
}

// Items returns the current items.
func (l *ItemList) Items() []Item {
	return l.items
}

// Selected returns the index of the highlighted item.
func (l *ItemList) Selected() int {
	return l.selected
}

// SelectedItem returns the highlighted item, or nil if the list is empty.
func (l *ItemList) SelectedItem() *Item {
	if l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves the highlight up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the highlight down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// IsEmpty returns whether the list is empty.
func (l *ItemList) IsEmpty() bool {
	return len(l.items) == 0
}
