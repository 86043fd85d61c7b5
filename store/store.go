// Package store persists conversation history between assistant runs.
// The chat ID comes from the request context, see chatmodel.
package store

import (
	"context"

	"github.com/dumptruck-ai/agents/llms"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/dumptruck-ai/agents", "store")

// MessageStore keeps the messages of a chat. Implementations resolve
// the chat ID from the context.
type MessageStore interface {
	// Messages returns the stored history for the chat in the context.
	Messages(ctx context.Context) []llms.Message
	// Add appends messages to the chat history.
	Add(ctx context.Context, msgs ...llms.Message) error
	// Reset removes the chat history.
	Reset(ctx context.Context) error
}
