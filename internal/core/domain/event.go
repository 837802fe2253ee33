package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// EventKind identifies a navigation event sent back by a presentation layer.
type EventKind string

const (
	EventNext      EventKind = "next"
	EventPrev      EventKind = "prev"
	EventSelect    EventKind = "select"
	EventIndex     EventKind = "index"
	EventIndexPage EventKind = "index_page"
	EventLanguage  EventKind = "lang"
)

// Event is a parsed navigation event.
type Event struct {
	Kind EventKind
	// Arg is the text after the first colon, empty for next and prev.
	Arg string
}

// String renders the event in wire form.
func (e Event) String() string {
	if e.Arg == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ":" + e.Arg
}

// PageArg returns Arg as a page number for index_page events.
func (e Event) PageArg() (int, error) {
	n, err := strconv.Atoi(e.Arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: page %q", ErrInvalidInput, e.Arg)
	}
	return n, nil
}

// ParseEvent parses "next", "prev", "select:<id_or_key>", "index:<key>",
// "index_page:<n>" and "lang:<code>".
func ParseEvent(raw string) (Event, error) {
	raw = strings.TrimSpace(raw)
	kind, arg, hasArg := strings.Cut(raw, ":")
	kind = strings.ToLower(strings.TrimSpace(kind))
	arg = strings.TrimSpace(arg)

	switch EventKind(kind) {
	case EventNext, EventPrev:
		if hasArg && arg != "" {
			return Event{}, fmt.Errorf("%w: event %q takes no argument", ErrInvalidInput, kind)
		}
		return Event{Kind: EventKind(kind)}, nil
	case EventSelect, EventIndex, EventLanguage:
		if arg == "" {
			return Event{}, fmt.Errorf("%w: event %q needs an argument", ErrInvalidInput, kind)
		}
		return Event{Kind: EventKind(kind), Arg: arg}, nil
	case EventIndexPage:
		ev := Event{Kind: EventIndexPage, Arg: arg}
		if _, err := ev.PageArg(); err != nil {
			return Event{}, err
		}
		return ev, nil
	default:
		return Event{}, fmt.Errorf("%w: unknown event %q", ErrInvalidInput, raw)
	}
}
