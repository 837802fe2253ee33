// Package messages defines Bubbletea message types for the chat TUI.
package messages

import (
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
)

// ReplyReceived carries the chat service answer to one input line.
type ReplyReceived struct {
	Input string
	Reply *driving.Reply
	Err   error
}

// ViewChanged is sent when switching between the chat and help views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation view.
	ViewChat ViewType = iota
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Quit signals the application should exit.
type Quit struct{}
