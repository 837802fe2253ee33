package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/components/input"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/components/list"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/components/status"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/keymap"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/messages"
	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui/styles"
	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

// uploadedLayout formats upload times in the entry view.
const uploadedLayout = "2006-01-02 15:04"

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports          *Ports
	ctx            context.Context
	conversationID string

	styles *styles.Styles
	keymap *keymap.KeyMap
	input  *input.ChatInput
	list   *list.ItemList
	status *status.Bar

	currentView messages.ViewType

	// lastInput is echoed above the reply.
	lastInput string

	// reply is the last answer of the chat service.
	reply *driving.Reply

	language domain.Language
	waiting  bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat TUI bound to one conversation.
func NewApp(ports *Ports, conversationID string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if conversationID == "" {
		return nil, fmt.Errorf("creating app: %w: empty conversation id", domain.ErrInvalidInput)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetLanguage(ports.Language)

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		conversationID: conversationID,
		styles:         s,
		keymap:         km,
		input:          input.NewChatInput(s),
		list:           list.NewItemList(s),
		status:         bar,
		currentView:    messages.ViewChat,
		language:       ports.Language,
	}, nil
}

// WithContext sets the context for chat calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("maktaba"),
		a.input.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ReplyReceived:
		a.applyReply(msg)
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, a.keymap.Quit) {
		return a, tea.Quit
	}
	if keymap.Matches(k, a.keymap.Help) {
		if a.currentView == messages.ViewHelp {
			a.currentView = messages.ViewChat
		} else {
			a.currentView = messages.ViewHelp
		}
		return a, nil
	}
	if a.currentView == messages.ViewHelp {
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewChat
		}
		return a, nil
	}
	// One request at a time per conversation.
	if a.waiting {
		return a, nil
	}

	switch {
	case keymap.Matches(k, a.keymap.Submit):
		if line := strings.TrimSpace(a.input.Value()); line != "" {
			return a, a.send(line)
		}
		if item := a.list.SelectedItem(); item != nil {
			return a, a.send(driving.CommandPrefix + item.Event)
		}
		return a, nil

	case keymap.Matches(k, a.keymap.NextPage):
		return a, a.page(1)

	case keymap.Matches(k, a.keymap.PrevPage):
		return a, a.page(-1)

	case keymap.Matches(k, a.keymap.Indexes):
		return a, a.send(driving.CommandPrefix + "indexes")

	case keymap.Matches(k, a.keymap.Language):
		return a, a.send(driving.CommandPrefix + string(domain.EventLanguage) + ":" + a.otherLanguage().String())

	case keymap.Matches(k, a.keymap.Up), keymap.Matches(k, a.keymap.Down):
		a.list, _ = a.list.Update(msg)
		return a, nil

	case keymap.Matches(k, a.keymap.Clear):
		a.input.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// send dispatches one chat line asynchronously.
func (a *App) send(line string) tea.Cmd {
	a.waiting = true
	a.lastInput = line
	a.input.Reset()
	a.status.SetState(status.StateWaiting)

	ctx, chat, conv := a.ctx, a.ports.Chat, a.conversationID
	return func() tea.Msg {
		reply, err := driving.Dispatch(ctx, chat, conv, line)
		return messages.ReplyReceived{Input: line, Reply: reply, Err: err}
	}
}

// page moves through indexes when they are on screen, results otherwise.
func (a *App) page(delta int) tea.Cmd {
	if a.reply != nil && a.reply.Kind == driving.ReplyIndexes && a.reply.Indexes != nil {
		next := a.reply.Indexes.Index + delta
		return a.send(driving.CommandPrefix + string(domain.EventIndexPage) + ":" + strconv.Itoa(next))
	}
	if delta > 0 {
		return a.send(driving.CommandPrefix + string(domain.EventNext))
	}
	return a.send(driving.CommandPrefix + string(domain.EventPrev))
}

func (a *App) otherLanguage() domain.Language {
	if a.language == domain.LanguageEnglish {
		return domain.LanguageArabic
	}
	return domain.LanguageEnglish
}

func (a *App) applyReply(msg messages.ReplyReceived) {
	a.waiting = false

	reply := msg.Reply
	if msg.Err != nil {
		logger.Debug("chat %s: %q: %v", a.conversationID, msg.Input, msg.Err)
		reply = driving.ErrorReply(msg.Err)
	}
	if reply == nil {
		a.status.Clear()
		return
	}

	// Failures and page moves past the end keep the previous list
	// selectable; the notice goes to the status bar.
	if a.reply != nil && (msg.Err != nil || reply.Category == domain.CategoryInvalidNavigation) {
		if msg.Err != nil {
			a.status.SetState(status.StateError)
		} else {
			a.status.SetState(a.listState())
		}
		a.status.SetMessage(reply.Message)
		return
	}

	a.reply = reply
	if reply.Language.IsValid() {
		a.language = reply.Language
		a.status.SetLanguage(reply.Language)
	}

	title, items := itemsFromReply(reply)
	a.list.SetItems(title, items)
	if msg.Err != nil {
		a.status.SetState(status.StateError)
		a.status.SetMessage(reply.Message)
		return
	}
	a.status.SetState(a.listState())
	a.status.SetMessage(pageLabel(reply))
}

func (a *App) listState() status.State {
	if a.list.IsEmpty() {
		return status.StateReady
	}
	return status.StateList
}

// itemsFromReply turns a reply into list rows.
func itemsFromReply(reply *driving.Reply) (string, []list.Item) {
	switch reply.Kind {
	case driving.ReplyResults:
		if reply.Results == nil {
			return "", nil
		}
		label := reply.Query
		if reply.Topic != "" {
			label = reply.Topic
		}
		items := make([]list.Item, 0, len(reply.Results.Items))
		for _, e := range reply.Results.Items {
			id := strconv.FormatInt(e.ID, 10)
			items = append(items, list.Item{Key: id, Label: e.FileName, Event: "select:" + id})
		}
		return fmt.Sprintf("Results for %q", label), items

	case driving.ReplySuggestions:
		items := make([]list.Item, 0, len(reply.Suggestions))
		for _, s := range reply.Suggestions {
			items = append(items, list.Item{Key: s.Key, Label: s.Entry.FileName, Event: "select:" + s.Key})
		}
		return reply.Message + " Did you mean:", items

	case driving.ReplyIndexes:
		if reply.Indexes == nil {
			return "", nil
		}
		items := make([]list.Item, 0, len(reply.Indexes.Items))
		for _, def := range reply.Indexes.Items {
			items = append(items, list.Item{Key: def.Key, Label: def.DisplayName, Event: "index:" + def.Key})
		}
		return "Indexes (" + reply.Language.Description() + ")", items

	default:
		return "", nil
	}
}

func pageLabel(reply *driving.Reply) string {
	switch {
	case reply.Kind == driving.ReplyResults && reply.Results != nil:
		p := reply.Results
		return fmt.Sprintf("Page %d of %d (%d books)", p.Index+1, p.TotalPages, p.Total)
	case reply.Kind == driving.ReplyIndexes && reply.Indexes != nil:
		p := reply.Indexes
		return fmt.Sprintf("Page %d of %d", p.Index+1, p.TotalPages)
	default:
		return ""
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.currentView == messages.ViewHelp {
		return a.viewHelp()
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Maktaba"))
	b.WriteString("\n\n")

	if a.lastInput != "" {
		b.WriteString(a.styles.Prompt.Render("› " + a.lastInput))
		b.WriteString("\n\n")
	}

	if body := a.viewReply(); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.status.View())
	return b.String()
}

func (a *App) viewReply() string {
	if a.reply == nil {
		return a.styles.Muted.Render("Type a book name, or press ctrl+o to browse indexes.")
	}

	switch a.reply.Kind {
	case driving.ReplyEntry:
		if a.reply.Entry == nil {
			return ""
		}
		e := a.reply.Entry
		lines := []string{
			a.styles.Subtitle.Render(e.FileName),
			a.styles.Muted.Render("Reference: ") + e.FileReference,
		}
		if !e.UploadedAt.IsZero() {
			lines = append(lines, a.styles.Muted.Render("Uploaded:  ")+e.UploadedAt.Local().Format(uploadedLayout))
		}
		return strings.Join(lines, "\n")
	case driving.ReplyNotice:
		return a.styles.Notice.Render(a.reply.Message)
	default:
		return a.list.View()
	}
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(`Commands:
  /next /prev          Page through results
  /select:<id|key>     Show a result or suggestion
  /indexes             List topical indexes
  /index:<key>         Browse a topical index
  /lang:<ar|en>        Switch index language

[esc] back`)
	return b.String()
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.input.SetWidth(width)
	a.status.SetWidth(width)
	// Title, echo, input and status take about eight rows.
	a.list.SetDimensions(width, height-8)
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Reply returns the reply on screen.
func (a *App) Reply() *driving.Reply {
	return a.reply
}

// Language returns the index language of the conversation.
func (a *App) Language() domain.Language {
	return a.language
}

// Waiting reports whether a request is in flight.
func (a *App) Waiting() bool {
	return a.waiting
}
