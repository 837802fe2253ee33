package mcp

import (
	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Chat runs queries and navigation for a conversation.
	Chat driving.ChatService

	// Index backs the index catalog resources. Optional.
	Index driving.IndexService

	// Language is used when a tool call names no language.
	Language domain.Language
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
