// Package mcp exposes the library chat over the Model Context Protocol,
// so assistants can search the catalog and page through results.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")
