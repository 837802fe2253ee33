// Package status provides the status bar of the chat TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/keymap"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/styles"
	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// State represents what the chat is doing, for display.
type State string

// Bar states.
const (
	StateReady   State = "ready"
	StateWaiting State = "waiting"
	StateError   State = "error"
	StateHelp    State = "help"
	StateList    State = "list"
)

// Bar displays the chat state, the session language and key hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	language domain.Language
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	lang := ""
	if b.language != "" {
		lang = b.styles.Key.Render(b.language.String()) + " "
	}

	switch b.state {
	case StateWaiting:
		return lang + b.styles.Muted.Render("Searching...")
	case StateError:
		return lang + b.styles.Error.Render(b.message)
	case StateHelp:
		return lang + b.styles.Normal.Render("Help")
	case StateReady, StateList:
		if b.message != "" {
			return lang + b.styles.Normal.Render(b.message)
		}
	}
	return lang + b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	var bindings []key.Binding
	if b.state == StateList {
		bindings = b.keymap.ResultsHelp()
	} else {
		bindings = b.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the text shown on the left.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetLanguage sets the index language indicator.
func (b *Bar) SetLanguage(lang domain.Language) {
	b.language = lang
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the status bar to its ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
