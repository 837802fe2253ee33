package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/tui"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

var (
	chatConversation string
	chatPlain        bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a chat session",
	Long: `Starts a conversation with the library assistant.

Type a book name to search. Lines starting with / are commands:
  /next, /prev          move between result pages
  /select:<id or key>   show one result or suggestion
  /indexes              list the topical indexes
  /index:<key>          browse a topical index
  /index_page:<n>       show page n of the indexes
  /lang:<ar|en>         switch the index language
  /quit                 leave

On a terminal the interactive UI is used; with --plain, or when input
is piped, one reply is printed per line read.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatConversation, "conversation", "",
		"conversation id to resume (default: a new one)")
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "use line mode even on a terminal")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	conv := chatConversation
	if conv == "" {
		conv = uuid.NewString()
	}
	logger.Debug("conversation %s", conv)

	defer followIndexes(cmd.Context())()

	if !chatPlain && isTerminal() {
		return runChatTUI(cmd, conv)
	}
	return runChatLines(cmd, conv)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runChatTUI(cmd *cobra.Command, conv string) error {
	// Log lines would tear the alternate screen.
	logger.SetQuiet(true)
	defer logger.SetQuiet(false)

	app, err := tui.NewApp(&tui.Ports{Chat: chatService, Language: defaultLanguage}, conv)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// runChatLines answers one line of input at a time until EOF or /quit.
func runChatLines(cmd *cobra.Command, conv string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		reply, err := driving.Dispatch(ctx, chatService, conv, line)
		if err != nil {
			logger.Debug("chat %q: %v", line, err)
			reply = driving.ErrorReply(err)
		}
		renderReply(out, reply)
		fmt.Fprintln(out)

		if ctx.Err() != nil {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
